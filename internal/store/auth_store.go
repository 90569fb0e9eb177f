package store

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/mosquito-alert/internal/auth"
	"github.com/spec-kit/mosquito-alert/internal/domain"
	"github.com/spec-kit/mosquito-alert/internal/events"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/adventurer/svg?seed="

// AuthStore owns the user registry and the single authenticated session. All
// mutations go through its operations; reads return copies, never live
// references. Safe for concurrent use.
type AuthStore struct {
	mu         sync.Mutex
	users      []domain.User
	session    domain.Session
	storage    SessionStorage
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	subs       *subscriberList[domain.Session]
}

// AuthDependencies bundles collaborator requirements for the auth store.
type AuthDependencies struct {
	Storage    SessionStorage
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	BcryptCost int
}

// NewAuthStore builds the store and restores a persisted session, if any.
func NewAuthStore(ctx context.Context, deps AuthDependencies) (*AuthStore, error) {
	if deps.Storage == nil {
		deps.Storage = NewMemoryStorage()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.BcryptCost <= 0 {
		deps.BcryptCost = 12
	}

	s := &AuthStore{
		storage:    deps.Storage,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: deps.BcryptCost,
		subs:       newSubscriberList[domain.Session](),
	}

	user, err := deps.Storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.users = append(s.users, *user)
		s.session = domain.Session{User: user}
		s.logger.Info("restored session", zap.String("user_id", user.ID))
	}
	return s, nil
}

// Register creates a new user account and logs it in. Fails with
// domain.ErrDuplicateEmail when the email is already registered (exact,
// case-sensitive match); registry and session are left untouched in that case.
func (s *AuthStore) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == email {
			s.mu.Unlock()
			return nil, domain.ErrDuplicateEmail
		}
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Avatar:       avatarBaseURL + url.QueryEscape(name),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	s.users = append(s.users, user)
	session := s.setSessionLocked(ctx, &user)
	s.mu.Unlock()

	s.notify(ctx, session, "register")
	returned := user
	return &returned, nil
}

// Login authenticates by email. Fails with domain.ErrInvalidCredentials when
// no user matches or the password does not verify. Users without a stored
// hash (seeded demo accounts) skip password verification.
func (s *AuthStore) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	var found *domain.User
	for i := range s.users {
		if s.users[i].Email == email {
			found = &s.users[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return nil, domain.ErrInvalidCredentials
	}
	if found.PasswordHash != "" {
		if err := auth.ComparePassword(found.PasswordHash, password); err != nil {
			s.mu.Unlock()
			return nil, domain.ErrInvalidCredentials
		}
	}

	user := *found
	session := s.setSessionLocked(ctx, &user)
	s.mu.Unlock()

	s.notify(ctx, session, "login")
	returned := user
	return &returned, nil
}

// LoginWithQRCode exchanges a scanned token for a session. The token is not
// validated against a backend; any non-empty value maps to the designated
// default user (the first registered account), standing in for a real
// token-to-user lookup.
func (s *AuthStore) LoginWithQRCode(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	s.mu.Lock()
	if len(s.users) == 0 {
		s.mu.Unlock()
		return nil, domain.ErrInvalidToken
	}
	user := s.users[0]
	session := s.setSessionLocked(ctx, &user)
	s.mu.Unlock()

	s.notify(ctx, session, "qr_login")
	returned := user
	return &returned, nil
}

// Logout clears the session and erases the durable record. Always succeeds.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = domain.Session{}
	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear stored session", zap.Error(err))
	}
	s.mu.Unlock()

	s.notify(ctx, domain.Session{}, "logout")
}

// IsAuthenticated reports whether a user is logged in.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Authenticated()
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *AuthStore) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.User == nil {
		return nil
	}
	user := *s.session.User
	return &user
}

// Subscribe registers fn and invokes it synchronously with the current session
// right away, so late subscribers observe the state they missed. fn runs again
// after every subsequent mutation. The returned function removes the listener
// and is safe to call more than once.
func (s *AuthStore) Subscribe(fn func(domain.Session)) func() {
	unsubscribe := s.subs.Subscribe(fn)
	fn(s.snapshot())
	return unsubscribe
}

// DefaultUser returns a copy of the first registered user, the designated
// stand-in for QR-code logins, or nil when the registry is empty.
func (s *AuthStore) DefaultUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) == 0 {
		return nil
	}
	user := s.users[0]
	return &user
}

// SeedDemoUser installs the demo account when the registry is empty. The demo
// user has no password, so Login accepts any value for it.
func (s *AuthStore) SeedDemoUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == "teste@example.com" {
			return
		}
	}
	s.users = append(s.users, domain.User{
		ID:        uuid.NewString(),
		Name:      "Usuário Teste",
		Email:     "teste@example.com",
		Avatar:    avatarBaseURL + "Felix",
		CreatedAt: time.Now(),
	})
}

// setSessionLocked replaces the session and persists it. Caller holds s.mu.
func (s *AuthStore) setSessionLocked(ctx context.Context, user *domain.User) domain.Session {
	s.session = domain.Session{User: user}
	if err := s.storage.Save(ctx, user); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
	copied := *user
	return domain.Session{User: &copied}
}

func (s *AuthStore) snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.User == nil {
		return domain.Session{}
	}
	user := *s.session.User
	return domain.Session{User: &user}
}

func (s *AuthStore) notify(ctx context.Context, session domain.Session, trigger string) {
	s.subs.Notify(session)

	if s.dispatcher == nil {
		return
	}
	payload := events.SessionChangedPayload{
		Authenticated: session.Authenticated(),
		Trigger:       trigger,
	}
	if session.User != nil {
		payload.UserID = session.User.ID
		payload.UserName = session.User.Name
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSessionChanged,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
