package model

// OperationKind определяет вид финансовой операции
type OperationKind int

const (
	KindExpense OperationKind = iota
	KindIncome
	KindTransfer
)

// Title возвращает название операции для сообщений пользователю
func (k OperationKind) Title() string {
	switch k {
	case KindExpense:
		return "Расход"
	case KindIncome:
		return "Поступление"
	case KindTransfer:
		return "Перевод"
	}
	return "Операция"
}

// ArticleType возвращает тип статьи в справочнике для одиночных операций
func (k OperationKind) ArticleType() string {
	if k == KindExpense {
		return ArticleTypeOutflow
	}
	return ArticleTypeInflow
}

// Типы статей в справочнике и маркер статьи перевода между счетами.
// Статьи с маркером скрыты из ручного выбора и используются только
// машинными записями перевода.
const (
	ArticleTypeInflow  = "Поступление"
	ArticleTypeOutflow = "Выбытие"
	TransferMarker     = "Перевод между счетами"
)

// Step — шаг диалога. Последовательность шагов строго упорядочена
// для каждого вида операции, пропуски и возвраты невозможны
// (кроме отмены всей операции).
type Step int

const (
	StepDate Step = iota
	StepAmount
	StepWallet
	StepDirection
	StepCounterparty
	StepPurpose
	StepCategory
	StepAttachmentDecision
	StepAttachmentUpload
	StepSourceWallet
	StepDestWallet
)

// Последовательности шагов по видам операций.
var (
	singleEntrySteps = []Step{
		StepDate, StepAmount, StepWallet, StepDirection,
		StepCounterparty, StepPurpose, StepCategory,
		StepAttachmentDecision, StepAttachmentUpload,
	}
	transferSteps = []Step{
		StepDate, StepAmount, StepDirection,
		StepSourceWallet, StepDestWallet,
	}
)

// Steps возвращает последовательность шагов для вида операции
func (k OperationKind) Steps() []Step {
	if k == KindTransfer {
		return transferSteps
	}
	return singleEntrySteps
}

// IsSelection сообщает, ожидает ли шаг выбор из списка,
// а не свободный текстовый ввод
func (s Step) IsSelection() bool {
	switch s {
	case StepWallet, StepDirection, StepCategory, StepSourceWallet, StepDestWallet:
		return true
	}
	return false
}
