package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/mosquito-alert/internal/domain"
	"github.com/spec-kit/mosquito-alert/internal/events"
	"github.com/spec-kit/mosquito-alert/pkg/util"
)

// ReportStore owns the report collection. Reports are created through
// CreateReport only, never mutated or deleted afterwards; status transitions
// belong to the moderation backend. The underlying slice is replaced on every
// append rather than mutated in place, so snapshots handed to queries and
// subscribers stay stable. Safe for concurrent use.
type ReportStore struct {
	mu         sync.Mutex
	reports    []domain.MosquitoReport
	auth       *AuthStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	subs       *subscriberList[[]domain.MosquitoReport]
}

// ReportDependencies bundles collaborator requirements for the report store.
type ReportDependencies struct {
	Auth       *AuthStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewReportStore constructs the store.
func NewReportStore(deps ReportDependencies) *ReportStore {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &ReportStore{
		auth:       deps.Auth,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		subs:       newSubscriberList[[]domain.MosquitoReport](),
	}
}

// CreateReport records a new breeding-site report attributed to the current
// session. Fails with domain.ErrNotAuthenticated when nobody is logged in and
// leaves the collection untouched. The report is stamped with the creator's id
// and name as they are now; later profile changes do not propagate back.
func (s *ReportStore) CreateReport(ctx context.Context, location domain.Location, description, imageURL string) (*domain.MosquitoReport, error) {
	user := s.auth.CurrentUser()
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if !location.Valid() {
		return nil, util.NewValidationError("coordinates out of range", map[string]any{
			"lat": location.Lat,
			"lng": location.Lng,
		})
	}

	report := domain.MosquitoReport{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		UserName:    user.Name,
		Location:    location,
		Description: description,
		ImageURL:    imageURL,
		Status:      domain.ReportStatusPending,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	next := make([]domain.MosquitoReport, len(s.reports), len(s.reports)+1)
	copy(next, s.reports)
	s.reports = append(next, report)
	snapshot := sortedCopyLocked(s.reports)
	s.mu.Unlock()

	s.logger.Info("report created",
		zap.String("report_id", report.ID),
		zap.String("user_id", report.UserID))
	s.notify(ctx, snapshot, &report)

	returned := report
	return &returned, nil
}

// AllReports returns a defensive copy of the collection sorted by creation
// time, newest first. Ties are broken by reverse insertion order.
func (s *ReportStore) AllReports() []domain.MosquitoReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCopyLocked(s.reports)
}

// UserReports returns the current user's reports, newest first. Without a
// session it returns an empty slice, never an error.
func (s *ReportStore) UserReports() []domain.MosquitoReport {
	user := s.auth.CurrentUser()
	if user == nil {
		return []domain.MosquitoReport{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := make([]domain.MosquitoReport, 0, len(s.reports))
	for _, r := range s.reports {
		if r.UserID == user.ID {
			filtered = append(filtered, r)
		}
	}
	return sortedCopyLocked(filtered)
}

// ReportByID looks up a single report. The boolean signals a miss; no error.
func (s *ReportStore) ReportByID(id string) (*domain.MosquitoReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.ID == id {
			found := r
			return &found, true
		}
	}
	return nil, false
}

// Subscribe registers fn and invokes it synchronously with the current sorted
// snapshot right away, then after every mutation. This matches AuthStore's
// contract. The returned function removes the listener and is idempotent.
func (s *ReportStore) Subscribe(fn func([]domain.MosquitoReport)) func() {
	unsubscribe := s.subs.Subscribe(fn)
	fn(s.AllReports())
	return unsubscribe
}

// SeedDemoReports installs the two demo reports when the collection is empty.
// They are attributed to the seeded demo user when present.
func (s *ReportStore) SeedDemoReports() {
	user := s.auth.DefaultUser()
	userID, userName := "", "Usuário Teste"
	if user != nil {
		userID, userName = user.ID, user.Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reports) > 0 {
		return
	}
	s.reports = []domain.MosquitoReport{
		{
			ID:       uuid.NewString(),
			UserID:   userID,
			UserName: userName,
			Location: domain.Location{
				Lat:     -22.9068,
				Lng:     -43.1729,
				Address: "Rio de Janeiro, RJ, Brasil",
			},
			Description: "Água parada em um pneu abandonado",
			Status:      domain.ReportStatusPending,
			CreatedAt:   time.Date(2023, time.October, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       uuid.NewString(),
			UserID:   userID,
			UserName: userName,
			Location: domain.Location{
				Lat:     -23.5505,
				Lng:     -46.6333,
				Address: "São Paulo, SP, Brasil",
			},
			Description: "Recipientes destampados com água parada",
			Status:      domain.ReportStatusVerified,
			CreatedAt:   time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC),
		},
	}
}

// sortedCopyLocked copies reports in reverse insertion order and stable-sorts
// by CreatedAt descending, so equal timestamps keep reverse insertion order.
func sortedCopyLocked(reports []domain.MosquitoReport) []domain.MosquitoReport {
	out := make([]domain.MosquitoReport, len(reports))
	for i, r := range reports {
		out[len(out)-1-i] = r
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *ReportStore) notify(ctx context.Context, snapshot []domain.MosquitoReport, created *domain.MosquitoReport) {
	s.subs.Notify(snapshot)

	if s.dispatcher == nil || created == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventReportCreated,
		Timestamp: time.Now(),
		Payload: events.ReportCreatedPayload{
			ReportID: created.ID,
			UserID:   created.UserID,
			Address:  created.Location.Address,
			Status:   created.Status,
		},
	})
}
