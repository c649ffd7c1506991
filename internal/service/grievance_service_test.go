package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/events"
	"github.com/spec-kit/grievance-service/internal/service"
	apperrors "github.com/spec-kit/grievance-service/pkg/util/errorutil"
)

func newGrievanceService(repo *fakeGrievanceRepo, dispatcher events.Dispatcher) *service.GrievanceService {
	return service.NewGrievanceService(repo, nil, dispatcher, zap.NewNop())
}

func raiser(id int64) *domain.User {
	return &domain.User{ID: id, Username: "raiser", Role: domain.RoleUser}
}

func manager() *domain.User {
	return &domain.User{ID: 99, Username: "manager", Role: domain.RoleGrievanceManager}
}

func TestRaiseDefaultsToOpen(t *testing.T) {
	svc := newGrievanceService(newFakeGrievanceRepo(), nil)

	grievance, err := svc.Raise(context.Background(), raiser(1), "Leaky faucet", "Kitchen sink drips")
	require.NoError(t, err)
	require.Equal(t, domain.GrievanceStatusOpen, grievance.Status)
	require.Nil(t, grievance.ResolvedAt)
	require.Equal(t, int64(1), grievance.UserID)
	require.NotZero(t, grievance.ID)
}

func TestRaiseValidation(t *testing.T) {
	svc := newGrievanceService(newFakeGrievanceRepo(), nil)
	actor := raiser(1)

	_, err := svc.Raise(context.Background(), actor, "   ", "description")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = svc.Raise(context.Background(), actor, "title", " \n ")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = svc.Raise(context.Background(), actor, strings.Repeat("x", domain.TitleMaxLength+1), "description")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	// boundary: exactly 255 runes is fine
	_, err = svc.Raise(context.Background(), actor, strings.Repeat("x", domain.TitleMaxLength), "description")
	require.NoError(t, err)
}

func TestRaiseTitleLengthCountsCharacters(t *testing.T) {
	svc := newGrievanceService(newFakeGrievanceRepo(), nil)
	actor := raiser(1)

	// 200 two-byte characters stay under the 255-character bound even
	// though the byte length is 400
	grievance, err := svc.Raise(context.Background(), actor, strings.Repeat("é", 200), "description")
	require.NoError(t, err)
	require.Equal(t, 200, len([]rune(grievance.Title)))

	_, err = svc.Raise(context.Background(), actor, strings.Repeat("é", domain.TitleMaxLength), "description")
	require.NoError(t, err)

	_, err = svc.Raise(context.Background(), actor, strings.Repeat("é", domain.TitleMaxLength+1), "description")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestUpdateStatusSetsAndClearsResolvedAt(t *testing.T) {
	repo := newFakeGrievanceRepo()
	svc := newGrievanceService(repo, nil)

	grievance, err := svc.Raise(context.Background(), raiser(1), "Leaky faucet", "Kitchen sink drips")
	require.NoError(t, err)

	before := time.Now()
	require.NoError(t, svc.UpdateStatus(context.Background(), manager(), grievance.ID, "RESOLVED"))

	stored, err := repo.GetByID(context.Background(), grievance.ID)
	require.NoError(t, err)
	require.Equal(t, domain.GrievanceStatusResolved, stored.Status)
	require.NotNil(t, stored.ResolvedAt)
	require.WithinDuration(t, before, *stored.ResolvedAt, 5*time.Second)

	// moving back to IN_PROGRESS clears the resolution timestamp
	require.NoError(t, svc.UpdateStatus(context.Background(), manager(), grievance.ID, "IN_PROGRESS"))
	stored, err = repo.GetByID(context.Background(), grievance.ID)
	require.NoError(t, err)
	require.Equal(t, domain.GrievanceStatusInProgress, stored.Status)
	require.Nil(t, stored.ResolvedAt)
}

func TestUpdateStatusRejectsInvalidTargets(t *testing.T) {
	repo := newFakeGrievanceRepo()
	svc := newGrievanceService(repo, nil)

	grievance, err := svc.Raise(context.Background(), raiser(1), "Leaky faucet", "Kitchen sink drips")
	require.NoError(t, err)

	// OPEN is a creation default, never an update target
	err = svc.UpdateStatus(context.Background(), manager(), grievance.ID, "OPEN")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	err = svc.UpdateStatus(context.Background(), manager(), grievance.ID, "CLOSED")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	stored, err := repo.GetByID(context.Background(), grievance.ID)
	require.NoError(t, err)
	require.Equal(t, domain.GrievanceStatusOpen, stored.Status)
}

func TestUpdateStatusMissingGrievance(t *testing.T) {
	repo := newFakeGrievanceRepo()
	svc := newGrievanceService(repo, nil)

	_, err := svc.Raise(context.Background(), raiser(1), "Leaky faucet", "Kitchen sink drips")
	require.NoError(t, err)

	countsBefore, err := svc.StatusReport(context.Background())
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), manager(), 9999, "RESOLVED")
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	countsAfter, err := svc.StatusReport(context.Background())
	require.NoError(t, err)
	require.Equal(t, countsBefore, countsAfter)
}

func TestStatusCountsPartitionTotal(t *testing.T) {
	repo := newFakeGrievanceRepo()
	svc := newGrievanceService(repo, nil)
	actor := raiser(1)

	ids := make([]int64, 0, 6)
	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		g, err := svc.Raise(context.Background(), actor, title, "description of "+title)
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}
	require.NoError(t, svc.UpdateStatus(context.Background(), manager(), ids[0], "IN_PROGRESS"))
	require.NoError(t, svc.UpdateStatus(context.Background(), manager(), ids[1], "RESOLVED"))
	require.NoError(t, svc.UpdateStatus(context.Background(), manager(), ids[2], "RESOLVED"))

	counts, err := svc.StatusReport(context.Background())
	require.NoError(t, err)

	var total int64
	for _, count := range counts {
		total += count
	}
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(len(all)), total)
	require.Equal(t, int64(3), counts[domain.GrievanceStatusOpen])
	require.Equal(t, int64(1), counts[domain.GrievanceStatusInProgress])
	require.Equal(t, int64(2), counts[domain.GrievanceStatusResolved])

	resolved, err := svc.CountByStatus(context.Background(), domain.GrievanceStatusResolved)
	require.NoError(t, err)
	require.Equal(t, int64(2), resolved)
}

func TestListByUserIsOrderedSubsetOfListAll(t *testing.T) {
	repo := newFakeGrievanceRepo()
	svc := newGrievanceService(repo, nil)

	alice := raiser(1)
	bob := raiser(2)
	_, err := svc.Raise(context.Background(), alice, "first", "from alice")
	require.NoError(t, err)
	_, err = svc.Raise(context.Background(), bob, "second", "from bob")
	require.NoError(t, err)
	_, err = svc.Raise(context.Background(), alice, "third", "from alice again")
	require.NoError(t, err)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	mine, err := svc.ListByUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	// same relative order as the full listing
	var filtered []int64
	for _, g := range all {
		if g.UserID == alice.ID {
			filtered = append(filtered, g.ID)
		}
	}
	var got []int64
	for _, g := range mine {
		require.Equal(t, alice.ID, g.UserID)
		got = append(got, g.ID)
	}
	require.Equal(t, filtered, got)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	svc := newGrievanceService(newFakeGrievanceRepo(), nil)
	actor := raiser(1)

	_, err := svc.Raise(context.Background(), actor, "Leaky faucet", "Kitchen sink drips")
	require.NoError(t, err)
	_, err = svc.Raise(context.Background(), actor, "Broken window", "the FAUCET note is only here")
	require.NoError(t, err)
	_, err = svc.Raise(context.Background(), actor, "Noisy neighbors", "loud music at night")
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), "faucet")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// no match is an empty result, not a failure
	results, err = svc.Search(context.Background(), "elevator")
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestResolveScenarioPublishesEventAndUpdatesCounts(t *testing.T) {
	repo := newFakeGrievanceRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := newGrievanceService(repo, dispatcher)

	var seen []events.EventType
	record := func(_ context.Context, event events.Event) error {
		seen = append(seen, event.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventGrievanceRaised, record)
	dispatcher.Subscribe(events.EventGrievanceStatusChanged, record)

	alice := raiser(7)
	grievance, err := svc.Raise(context.Background(), alice, "Leaky faucet", "Kitchen sink drips")
	require.NoError(t, err)

	resolvedBefore, err := svc.CountByStatus(context.Background(), domain.GrievanceStatusResolved)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), manager(), grievance.ID, "RESOLVED"))

	resolvedAfter, err := svc.CountByStatus(context.Background(), domain.GrievanceStatusResolved)
	require.NoError(t, err)
	require.Equal(t, resolvedBefore+1, resolvedAfter)

	mine, err := svc.ListByUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, domain.GrievanceStatusResolved, mine[0].Status)
	require.NotNil(t, mine[0].ResolvedAt)

	require.Equal(t, []events.EventType{events.EventGrievanceRaised, events.EventGrievanceStatusChanged}, seen)
}
