package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/mosquito-alert/internal/domain"
)

func newTestStores(t *testing.T) (*AuthStore, *ReportStore) {
	t.Helper()
	authStore := newTestAuthStore(t, nil)
	reportStore := NewReportStore(ReportDependencies{Auth: authStore})
	return authStore, reportStore
}

func mustRegister(t *testing.T, s *AuthStore, name, email string) *domain.User {
	t.Helper()
	user, err := s.Register(context.Background(), name, email, "pw")
	require.NoError(t, err)
	return user
}

var ruaX = domain.Location{Lat: -22.9, Lng: -43.1, Address: "Rua X"}

func TestCreateReportAuthenticated(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	ctx := context.Background()
	user := mustRegister(t, authStore, "Ana", "ana@x.com")

	report, err := reportStore.CreateReport(ctx, ruaX, "Água parada", "")
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, user.ID, report.UserID)
	assert.Equal(t, "Ana", report.UserName)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	assert.False(t, report.CreatedAt.IsZero())
	assert.Equal(t, ruaX, report.Location)

	all := reportStore.AllReports()
	mine := reportStore.UserReports()
	require.Len(t, all, 1)
	require.Len(t, mine, 1)
	assert.Equal(t, report.ID, all[0].ID)
	assert.Equal(t, report.ID, mine[0].ID)
}

func TestCreateReportUnauthenticated(t *testing.T) {
	_, reportStore := newTestStores(t)

	_, err := reportStore.CreateReport(context.Background(), ruaX, "Água parada", "")
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, reportStore.AllReports())
}

func TestCreateReportRejectsOutOfRangeCoordinates(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	mustRegister(t, authStore, "Ana", "ana@x.com")

	tests := []struct {
		name string
		loc  domain.Location
	}{
		{"lat too low", domain.Location{Lat: -91, Lng: 0}},
		{"lat too high", domain.Location{Lat: 91, Lng: 0}},
		{"lng too low", domain.Location{Lat: 0, Lng: -181}},
		{"lng too high", domain.Location{Lat: 0, Lng: 181}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reportStore.CreateReport(context.Background(), tt.loc, "desc", "")
			require.Error(t, err)
		})
	}
	assert.Empty(t, reportStore.AllReports())
}

func TestReportIDsUniqueUnderRapidCreation(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	ctx := context.Background()
	mustRegister(t, authStore, "Ana", "ana@x.com")

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		report, err := reportStore.CreateReport(ctx, ruaX, "desc", "")
		require.NoError(t, err)
		require.False(t, seen[report.ID], "duplicate id %s", report.ID)
		seen[report.ID] = true
	}
}

func TestAllReportsNewestFirst(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	ctx := context.Background()
	mustRegister(t, authStore, "Ana", "ana@x.com")

	var created []string
	for i := 0; i < 5; i++ {
		report, err := reportStore.CreateReport(ctx, ruaX, "desc", "")
		require.NoError(t, err)
		created = append(created, report.ID)
	}

	all := reportStore.AllReports()
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		require.False(t, all[i-1].CreatedAt.Before(all[i].CreatedAt),
			"reports must be sorted non-increasing by creation time")
	}
	// equal timestamps fall back to reverse insertion order, so back-to-back
	// creations always come out newest first
	for i, id := range created {
		assert.Equal(t, id, all[len(all)-1-i].ID)
	}
}

func TestUserReportsScopedToSession(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	ctx := context.Background()

	ana := mustRegister(t, authStore, "Ana", "ana@x.com")
	_, err := reportStore.CreateReport(ctx, ruaX, "from ana", "")
	require.NoError(t, err)

	bob := mustRegister(t, authStore, "Bob", "bob@x.com") // auto-login replaces session
	_, err = reportStore.CreateReport(ctx, ruaX, "from bob", "")
	require.NoError(t, err)

	mine := reportStore.UserReports()
	require.Len(t, mine, 1)
	assert.Equal(t, bob.ID, mine[0].UserID)

	_, err = authStore.Login(ctx, "ana@x.com", "pw")
	require.NoError(t, err)
	mine = reportStore.UserReports()
	require.Len(t, mine, 1)
	assert.Equal(t, ana.ID, mine[0].UserID)

	assert.Len(t, reportStore.AllReports(), 2)
}

func TestReportByID(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	mustRegister(t, authStore, "Ana", "ana@x.com")

	report, err := reportStore.CreateReport(context.Background(), ruaX, "desc", "")
	require.NoError(t, err)

	found, ok := reportStore.ReportByID(report.ID)
	require.True(t, ok)
	assert.Equal(t, report.ID, found.ID)

	_, ok = reportStore.ReportByID("missing")
	assert.False(t, ok)
}

func TestReportQueriesReturnCopies(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	mustRegister(t, authStore, "Ana", "ana@x.com")

	_, err := reportStore.CreateReport(context.Background(), ruaX, "desc", "")
	require.NoError(t, err)

	all := reportStore.AllReports()
	all[0].Description = "mutated"
	assert.Equal(t, "desc", reportStore.AllReports()[0].Description)

	found, ok := reportStore.ReportByID(all[0].ID)
	require.True(t, ok)
	found.Status = domain.ReportStatusEliminated
	fresh, _ := reportStore.ReportByID(all[0].ID)
	assert.Equal(t, domain.ReportStatusPending, fresh.Status)
}

// Reports survive session changes: register, report, logout, login again.
func TestAnaScenario(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	ctx := context.Background()

	_, err := authStore.Register(ctx, "Ana", "ana@x.com", "pw")
	require.NoError(t, err)
	require.True(t, authStore.IsAuthenticated())

	report, err := reportStore.CreateReport(ctx, ruaX, "Água parada", "")
	require.NoError(t, err)

	mine := reportStore.UserReports()
	require.Len(t, mine, 1)
	assert.Equal(t, "Água parada", mine[0].Description)
	assert.Equal(t, domain.ReportStatusPending, mine[0].Status)

	authStore.Logout(ctx)
	assert.Empty(t, reportStore.UserReports())

	_, err = authStore.Login(ctx, "ana@x.com", "pw")
	require.NoError(t, err)
	mine = reportStore.UserReports()
	require.Len(t, mine, 1)
	assert.Equal(t, report.ID, mine[0].ID)
}

func TestReportSubscribeImmediateInvoke(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	ctx := context.Background()
	mustRegister(t, authStore, "Ana", "ana@x.com")

	_, err := reportStore.CreateReport(ctx, ruaX, "first", "")
	require.NoError(t, err)

	var snapshots [][]domain.MosquitoReport
	unsubscribe := reportStore.Subscribe(func(reports []domain.MosquitoReport) {
		snapshots = append(snapshots, reports)
	})
	defer unsubscribe()

	require.Len(t, snapshots, 1, "subscriber receives current snapshot immediately")
	require.Len(t, snapshots[0], 1)

	_, err = reportStore.CreateReport(ctx, ruaX, "second", "")
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[1], 2)
	assert.Equal(t, "second", snapshots[1][0].Description, "listener observes post-mutation state")
}

func TestReportUnsubscribeBeforeMutation(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	mustRegister(t, authStore, "Ana", "ana@x.com")

	calls := 0
	unsubscribe := reportStore.Subscribe(func([]domain.MosquitoReport) { calls++ })
	unsubscribe()
	unsubscribe()

	_, err := reportStore.CreateReport(context.Background(), ruaX, "desc", "")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "only the immediate invoke, nothing after unsubscribe")
}

func TestUnsubscribeDuringFanOutKeepsCurrentPass(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	ctx := context.Background()
	mustRegister(t, authStore, "Ana", "ana@x.com")

	var unsubscribeB func()
	aCalls, bCalls := 0, 0
	reportStore.Subscribe(func([]domain.MosquitoReport) {
		aCalls++
		if unsubscribeB != nil {
			unsubscribeB()
		}
	})
	unsubscribeB = reportStore.Subscribe(func([]domain.MosquitoReport) { bCalls++ })
	aCalls, bCalls = 0, 0

	_, err := reportStore.CreateReport(ctx, ruaX, "first", "")
	require.NoError(t, err)
	assert.Equal(t, 1, aCalls)
	assert.Equal(t, 1, bCalls, "removal mid-pass must not affect the scheduled fan-out")

	_, err = reportStore.CreateReport(ctx, ruaX, "second", "")
	require.NoError(t, err)
	assert.Equal(t, 2, aCalls)
	assert.Equal(t, 1, bCalls, "listener stays removed on the next pass")
}

func TestSeedDemoReports(t *testing.T) {
	authStore, reportStore := newTestStores(t)
	authStore.SeedDemoUser()

	reportStore.SeedDemoReports()
	reportStore.SeedDemoReports() // idempotent

	all := reportStore.AllReports()
	require.Len(t, all, 2)
	demo := authStore.DefaultUser()
	require.NotNil(t, demo)
	for _, r := range all {
		assert.Equal(t, demo.ID, r.UserID)
	}
	assert.Equal(t, "São Paulo, SP, Brasil", all[0].Location.Address, "newest seed first")
}
