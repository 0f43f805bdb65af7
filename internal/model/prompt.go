package model

// KeyboardKind определяет клавиатуру, которую транспорт рисует под сообщением
type KeyboardKind int

const (
	// KeyboardNone — сообщение без клавиатуры
	KeyboardNone KeyboardKind = iota
	// KeyboardCancel — только кнопка отмены (ожидается свободный текст)
	KeyboardCancel
	// KeyboardList — список вариантов Options плюс кнопка отмены
	KeyboardList
	// KeyboardDate — пресеты даты (сегодня/вчера/ввести вручную) плюс отмена
	KeyboardDate
	// KeyboardAttachment — прикрепить чек / пропустить плюс отмена
	KeyboardAttachment
	// KeyboardMenu — главное меню операций
	KeyboardMenu
)

// Prompt — исходящее сообщение движка диалога: текст плюс либо ожидание
// свободного ввода, либо список вариантов с кнопкой отмены.
type Prompt struct {
	Text     string
	Keyboard KeyboardKind

	// Options — отображаемые варианты для KeyboardList
	Options []string

	// AdminMenu добавляет в главное меню операции, доступные
	// только администраторам
	AdminMenu bool
}
