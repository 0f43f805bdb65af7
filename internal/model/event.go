package model

// Event — входящее событие диалога. Закрытое множество: транспорт
// преобразует сырые обновления в одно из перечисленных ниже событий,
// движок диалога разбирает их по текущему шагу сессии.
type Event interface {
	isEvent()
}

// OperationChosen — пользователь выбрал вид операции в главном меню
type OperationChosen struct {
	Kind OperationKind
}

// FreeTextInput — свободный текстовый ввод (дата, сумма, контрагент, назначение)
type FreeTextInput struct {
	Text string
}

// SelectionChosen — выбор варианта из текущего списка по индексу
type SelectionChosen struct {
	Index int
}

// ImageSubmitted — пользователь прислал изображение (фото чека)
type ImageSubmitted struct {
	Data []byte
	Name string
}

// DatePresetKind перечисляет варианты быстрого выбора даты
type DatePresetKind int

const (
	PresetToday DatePresetKind = iota
	PresetYesterday
	PresetCustom
)

// DatePreset — выбор пресета даты поверх шага ввода даты
type DatePreset struct {
	Preset DatePresetKind
}

// AttachmentDecision — решение прикрепить чек или пропустить
type AttachmentDecision struct {
	Attach bool
}

// Cancel — отмена текущей операции, допустима на любом шаге
type Cancel struct{}

// MenuRequested — запрос главного меню (команда /start)
type MenuRequested struct{}

func (OperationChosen) isEvent()    {}
func (FreeTextInput) isEvent()      {}
func (SelectionChosen) isEvent()    {}
func (ImageSubmitted) isEvent()     {}
func (DatePreset) isEvent()         {}
func (AttachmentDecision) isEvent() {}
func (Cancel) isEvent()             {}
func (MenuRequested) isEvent()      {}
