package model

import "github.com/google/uuid"

// Record — неизменяемая проекция завершенной операции в строку реестра ДДС.
// Для перевода между счетами создаются две записи: приход и расход.
type Record struct {
	ID             string
	Date           string
	Amount         string
	Wallet         string
	Direction      string
	Counterparty   string
	Purpose        string
	Category       string
	SubmitterName  string
	SubmitterID    int64
	AttachmentLink string
}

// GenerateID генерирует новый UUID для записи, если он еще не установлен
func (r *Record) GenerateID() {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
}

// User — запись ростера доступа из справочника пользователей
type User struct {
	ID       int64
	Username string
	FullName string
	Position string
	IsAdmin  bool
}

// DisplayName возвращает имя для колонки автора записи
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return "Неизвестный"
}
