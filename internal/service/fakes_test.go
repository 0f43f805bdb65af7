package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sheetflow/dds_bot/internal/model"
)

type fakeArticle struct {
	name string
	typ  string
}

type fakeDirectory struct {
	users      map[int64]model.User
	wallets    []string
	directions []string
	articles   []fakeArticle
	listErr    error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: map[int64]model.User{
			1: {ID: 1, Username: "worker", FullName: "Иван Петров", Position: "Менеджер"},
			2: {ID: 2, Username: "boss", FullName: "Анна Сидорова", Position: "Администратор", IsAdmin: true},
		},
		wallets:    []string{"Cash", "Bank"},
		directions: []string{"Ops", "Retail"},
		articles: []fakeArticle{
			{"Office", model.ArticleTypeOutflow},
			{"Sales", model.ArticleTypeInflow},
			{"Выбытие — Перевод между счетами", model.ArticleTypeOutflow},
			{"Поступление — Перевод между счетами", model.ArticleTypeInflow},
		},
	}
}

func (d *fakeDirectory) Lookup(_ context.Context, userID int64) (model.User, bool, error) {
	u, ok := d.users[userID]
	return u, ok, nil
}

func (d *fakeDirectory) Wallets(_ context.Context) ([]string, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	return d.wallets, nil
}

func (d *fakeDirectory) Directions(_ context.Context) ([]string, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	return d.directions, nil
}

func (d *fakeDirectory) Categories(_ context.Context, articleType string, excludeTransfers bool) ([]string, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	var out []string
	for _, a := range d.articles {
		if articleType != "" && a.typ != articleType {
			continue
		}
		if excludeTransfers && strings.Contains(a.name, model.TransferMarker) {
			continue
		}
		out = append(out, a.name)
	}
	return out, nil
}

// fakeLedger нумерует строки с двойки: первая строка листа занята шапкой
type fakeLedger struct {
	rows      []model.Record
	links     map[int]string
	appends   int
	failFrom  int // с какого по счету Append возвращать ошибку, 0 — никогда
	attachErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{links: make(map[int]string)}
}

func (l *fakeLedger) Append(_ context.Context, rec model.Record) (int, error) {
	l.appends++
	if l.failFrom > 0 && l.appends >= l.failFrom {
		return 0, errors.New("sheet write failed")
	}
	l.rows = append(l.rows, rec)
	return len(l.rows) + 1, nil
}

func (l *fakeLedger) AttachLink(_ context.Context, row int, link string) error {
	if l.attachErr != nil {
		return l.attachErr
	}
	l.links[row] = link
	return nil
}

func (l *fakeLedger) Records(_ context.Context) ([]model.Record, error) {
	return l.rows, nil
}

type fakeStore struct {
	uploads int
	err     error
}

func (s *fakeStore) Upload(_ context.Context, data []byte, name, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads++
	return "https://files.example/" + name, nil
}

type fixtures struct {
	dir      *fakeDirectory
	ledger   *fakeLedger
	store    *fakeStore
	sessions *MemorySessionStore
}

func newTestEngine(t *testing.T) (*Engine, *fixtures) {
	t.Helper()
	f := &fixtures{
		dir:      newFakeDirectory(),
		ledger:   newFakeLedger(),
		store:    &fakeStore{},
		sessions: NewMemorySessionStore(),
	}
	e := NewEngine(f.dir, f.ledger, f.store, f.sessions, zap.NewNop())
	e.now = func() time.Time {
		return time.Date(2025, time.August, 30, 12, 0, 0, 0, time.UTC)
	}
	return e, f
}
