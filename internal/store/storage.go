package store

import (
	"context"
	"sync"

	"github.com/spec-kit/mosquito-alert/internal/domain"
)

// SessionKey is the durable key under which the session user is persisted,
// whichever backend is configured.
const SessionKey = "mosquito-alert-user"

// SessionStorage persists the single session record across restarts. Load
// returns (nil, nil) when no session is stored.
type SessionStorage interface {
	Load(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Clear(ctx context.Context) error
}

// memoryStorage keeps the session record in memory. Used in tests and when no
// durable backend is configured.
type memoryStorage struct {
	mu   sync.Mutex
	user *domain.User
}

// NewMemoryStorage creates an in-memory SessionStorage.
func NewMemoryStorage() SessionStorage {
	return &memoryStorage{}
}

func (m *memoryStorage) Load(_ context.Context) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, nil
	}
	user := *m.user
	return &user, nil
}

func (m *memoryStorage) Save(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user == nil {
		m.user = nil
		return nil
	}
	copied := *user
	m.user = &copied
	return nil
}

func (m *memoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}
