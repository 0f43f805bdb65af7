package model

// Session представляет текущее состояние диалога одного пользователя.
// Значение неизменяемо в рамках шага: каждый переход порождает новое
// значение, которое целиком заменяет прежнее в хранилище сессий.
type Session struct {
	Kind  OperationKind
	Step  Step
	Draft Draft

	// Options — список вариантов, ожидающих выбора пользователя.
	// Заполняется при входе на шаг выбора и очищается после выбора.
	Options []string

	// AwaitingCustomDate перенаправляет следующий текстовый ввод
	// в обработчик даты (выбран ручной ввод вместо пресета)
	AwaitingCustomDate bool

	// AwaitingAttachment перенаправляет следующее фото
	// в обработчик загрузки чека
	AwaitingAttachment bool

	// SubmittedRow — строка таблицы, в которую записана базовая запись;
	// используется для дозаписи ссылки на чек
	SubmittedRow int
}

// NewSession создает сессию на первом шаге операции
func NewSession(kind OperationKind) Session {
	return Session{Kind: kind, Step: StepDate}
}

// WithStep возвращает копию сессии на новом шаге с очищенным списком выбора
func (s Session) WithStep(step Step) Session {
	s.Step = step
	s.Options = nil
	return s
}

// WithOptions возвращает копию сессии с новым списком выбора
func (s Session) WithOptions(options []string) Session {
	s.Options = options
	return s
}

// Draft накапливает поля операции по мере прохождения шагов.
// Amount хранится нормализованным и беззнаковым: знак применяется
// при построении записи, а не при вводе.
type Draft struct {
	Date         string
	Amount       string
	Wallet       string
	Direction    string
	Counterparty string
	Purpose      string
	Category     string

	// Поля перевода между счетами
	SourceWallet string
	DestWallet   string
}
