package service

import (
	"sync"

	"github.com/sheetflow/dds_bot/internal/model"
)

// SessionStore хранит сессии диалогов по ID пользователя.
// Хранилище внедряется в движок, чтобы жизненный цикл сессий
// был явной ответственностью точки входа, а не глобальным состоянием.
type SessionStore interface {
	Get(userID int64) (model.Session, bool)
	Put(userID int64, s model.Session)
	Delete(userID int64)
}

// MemorySessionStore — хранилище сессий в памяти. Мьютекс защищает
// карту от конкурентных событий разных пользователей; события одного
// пользователя транспорт доставляет по одному.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]model.Session
}

// NewMemorySessionStore создает пустое хранилище сессий
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[int64]model.Session)}
}

func (s *MemorySessionStore) Get(userID int64) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

func (s *MemorySessionStore) Put(userID int64, sess model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

func (s *MemorySessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
