package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// GrievanceRepository encapsulates grievance persistence.
type GrievanceRepository interface {
	Create(ctx context.Context, grievance *domain.Grievance) error
	GetByID(ctx context.Context, id int64) (*domain.Grievance, error)
	List(ctx context.Context) ([]domain.Grievance, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Grievance, error)
	Search(ctx context.Context, keyword string) ([]domain.Grievance, error)
	UpdateStatus(ctx context.Context, id int64, status domain.GrievanceStatus, resolvedAt *time.Time) error
	CountByStatus(ctx context.Context, status domain.GrievanceStatus) (int64, error)
	StatusCounts(ctx context.Context) (map[domain.GrievanceStatus]int64, error)
}

type grievanceRepository struct {
	pool *pgxpool.Pool
}

// NewGrievanceRepository instantiates repository.
func NewGrievanceRepository(pool *pgxpool.Pool) GrievanceRepository {
	return &grievanceRepository{pool: pool}
}

func (r *grievanceRepository) Create(ctx context.Context, grievance *domain.Grievance) error {
	const query = `
        INSERT INTO grievances (user_id, title, description, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		grievance.UserID,
		grievance.Title,
		grievance.Description,
		grievance.Status,
	).Scan(&grievance.ID, &grievance.CreatedAt)
}

func (r *grievanceRepository) GetByID(ctx context.Context, id int64) (*domain.Grievance, error) {
	const query = `
        SELECT id, user_id, title, description, status, created_at, resolved_at
        FROM grievances WHERE id=$1`

	var grievance domain.Grievance
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&grievance.ID,
		&grievance.UserID,
		&grievance.Title,
		&grievance.Description,
		&grievance.Status,
		&grievance.CreatedAt,
		&grievance.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &grievance, nil
}

func (r *grievanceRepository) List(ctx context.Context) ([]domain.Grievance, error) {
	const query = `
        SELECT id, user_id, title, description, status, created_at, resolved_at
        FROM grievances ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievances(rows)
}

func (r *grievanceRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Grievance, error) {
	const query = `
        SELECT id, user_id, title, description, status, created_at, resolved_at
        FROM grievances WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievances(rows)
}

// Search matches the keyword case-insensitively against title or
// description. A keyword matching nothing yields an empty slice.
func (r *grievanceRepository) Search(ctx context.Context, keyword string) ([]domain.Grievance, error) {
	const query = `
        SELECT id, user_id, title, description, status, created_at, resolved_at
        FROM grievances
        WHERE LOWER(title) LIKE $1 OR LOWER(description) LIKE $1
        ORDER BY created_at DESC`

	pattern := "%" + strings.ToLower(keyword) + "%"
	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievances(rows)
}

// UpdateStatus writes the status/resolved_at pair atomically. The
// caller owns the lifecycle rule pairing resolvedAt with RESOLVED.
func (r *grievanceRepository) UpdateStatus(ctx context.Context, id int64, status domain.GrievanceStatus, resolvedAt *time.Time) error {
	const query = `UPDATE grievances SET status=$1, resolved_at=$2 WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, status, resolvedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *grievanceRepository) CountByStatus(ctx context.Context, status domain.GrievanceStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM grievances WHERE status=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// StatusCounts aggregates counts for all statuses in one round trip.
// Statuses with no rows are reported as zero.
func (r *grievanceRepository) StatusCounts(ctx context.Context) (map[domain.GrievanceStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM grievances GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.GrievanceStatus]int64{
		domain.GrievanceStatusOpen:       0,
		domain.GrievanceStatusInProgress: 0,
		domain.GrievanceStatusResolved:   0,
	}
	for rows.Next() {
		var status domain.GrievanceStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanGrievances(rows pgx.Rows) ([]domain.Grievance, error) {
	var result []domain.Grievance
	for rows.Next() {
		var grievance domain.Grievance
		if err := rows.Scan(
			&grievance.ID,
			&grievance.UserID,
			&grievance.Title,
			&grievance.Description,
			&grievance.Status,
			&grievance.CreatedAt,
			&grievance.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, grievance)
	}
	return result, rows.Err()
}
