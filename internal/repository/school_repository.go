package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/cbity-backend/internal/model"
)

const schoolColumns = `id, name, address, phone, email, logo, website, established, motto,
	COALESCE(subdomain, ''), owner_id, subscription, expiry_date, status, settings, created_at, updated_at`

// SchoolRepository handles school data access.
type SchoolRepository struct {
	pool *pgxpool.Pool
}

// NewSchoolRepository creates a new SchoolRepository.
func NewSchoolRepository(pool *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{pool: pool}
}

func scanSchool(row pgx.Row, s *model.School) error {
	return row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Email, &s.Logo, &s.Website,
		&s.Established, &s.Motto, &s.Subdomain, &s.OwnerID, &s.Subscription, &s.ExpiryDate,
		&s.Status, &s.Settings, &s.CreatedAt, &s.UpdatedAt)
}

// ListSchools returns every school, newest first.
func (r *SchoolRepository) ListSchools(ctx context.Context) ([]model.School, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+schoolColumns+` FROM schools ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSchool)
}

// CreateSchool inserts a school and returns the stored row.
func (r *SchoolRepository) CreateSchool(ctx context.Context, in *model.School) (*model.School, error) {
	subscription := in.Subscription
	if subscription == "" {
		subscription = model.PlanStarter
	}
	status := in.Status
	if status == "" {
		status = model.StatusActive
	}

	s := &model.School{}
	err := scanSchool(r.pool.QueryRow(ctx,
		`INSERT INTO schools (name, address, phone, email, logo, website, established, motto,
		                      subdomain, owner_id, subscription, expiry_date, status, settings)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING `+schoolColumns,
		in.Name, in.Address, in.Phone, in.Email, in.Logo, in.Website, in.Established, in.Motto,
		nullable(&in.Subdomain), in.OwnerID, subscription, in.ExpiryDate, status, rawObject(in.Settings),
	), s)
	if err != nil {
		return nil, translateUnique(err)
	}
	return s, nil
}

// SubdomainTaken reports whether any school already uses subdomain.
func (r *SchoolRepository) SubdomainTaken(ctx context.Context, subdomain string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM schools WHERE subdomain = $1)`, subdomain,
	).Scan(&taken)
	return taken, err
}

// UpdateSchoolStatusByOwner sets the status of every school owned by ownerID.
func (r *SchoolRepository) UpdateSchoolStatusByOwner(ctx context.Context, ownerID, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE schools SET status = $1, updated_at = NOW() WHERE owner_id = $2`,
		status, ownerID)
	return err
}
