package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// fakeUserRepo is an in-memory repository.UserRepository enforcing the
// same contract as the Postgres implementation: username uniqueness and
// pgx.ErrNoRows on zero-row mutations.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

// fakeGrievanceRepo mirrors the Postgres grievance repository in
// memory. Creation timestamps are strictly increasing so the
// created_at DESC ordering is deterministic.
type fakeGrievanceRepo struct {
	mu         sync.Mutex
	nextID     int64
	grievances map[int64]domain.Grievance
	base       time.Time
}

func newFakeGrievanceRepo() *fakeGrievanceRepo {
	return &fakeGrievanceRepo{
		grievances: make(map[int64]domain.Grievance),
		base:       time.Now().Add(-time.Hour),
	}
}

func (r *fakeGrievanceRepo) Create(_ context.Context, grievance *domain.Grievance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	grievance.ID = r.nextID
	grievance.CreatedAt = r.base.Add(time.Duration(r.nextID) * time.Second)
	r.grievances[grievance.ID] = *grievance
	return nil
}

func (r *fakeGrievanceRepo) GetByID(_ context.Context, id int64) (*domain.Grievance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	grievance, ok := r.grievances[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &grievance, nil
}

func (r *fakeGrievanceRepo) List(_ context.Context) ([]domain.Grievance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked(func(domain.Grievance) bool { return true }), nil
}

func (r *fakeGrievanceRepo) ListByUser(_ context.Context, userID int64) ([]domain.Grievance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked(func(g domain.Grievance) bool { return g.UserID == userID }), nil
}

func (r *fakeGrievanceRepo) Search(_ context.Context, keyword string) ([]domain.Grievance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(keyword)
	return r.sortedLocked(func(g domain.Grievance) bool {
		return strings.Contains(strings.ToLower(g.Title), needle) ||
			strings.Contains(strings.ToLower(g.Description), needle)
	}), nil
}

func (r *fakeGrievanceRepo) UpdateStatus(_ context.Context, id int64, status domain.GrievanceStatus, resolvedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	grievance, ok := r.grievances[id]
	if !ok {
		return pgx.ErrNoRows
	}
	grievance.Status = status
	grievance.ResolvedAt = resolvedAt
	r.grievances[id] = grievance
	return nil
}

func (r *fakeGrievanceRepo) CountByStatus(_ context.Context, status domain.GrievanceStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, g := range r.grievances {
		if g.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeGrievanceRepo) StatusCounts(_ context.Context) (map[domain.GrievanceStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[domain.GrievanceStatus]int64{
		domain.GrievanceStatusOpen:       0,
		domain.GrievanceStatusInProgress: 0,
		domain.GrievanceStatusResolved:   0,
	}
	for _, g := range r.grievances {
		counts[g.Status]++
	}
	return counts, nil
}

func (r *fakeGrievanceRepo) sortedLocked(keep func(domain.Grievance) bool) []domain.Grievance {
	var result []domain.Grievance
	for _, g := range r.grievances {
		if keep(g) {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
