package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/cbity-backend/internal/model"
)

const userColumns = `u.id, u.email, u.name, u.role, u.school_id, u.avatar, u.phone, u.address,
	u.date_of_birth, u.gender, u.employee_id, u.student_id, u.class, u.department,
	u.qualification, u.experience, u.guardian_name, u.guardian_phone, u.subjects,
	u.classes_assigned, u.permissions, u.metadata, u.status, u.created_at, u.updated_at`

const userWithSchool = userColumns + `,
	(SELECT to_jsonb(s) FROM schools s WHERE s.id = u.school_id)`

// UserRepository handles user profile data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func userDest(u *model.User) []any {
	return []any{&u.ID, &u.Email, &u.Name, &u.Role, &u.SchoolID, &u.Avatar, &u.Phone, &u.Address,
		&u.DateOfBirth, &u.Gender, &u.EmployeeID, &u.StudentID, &u.Class, &u.Department,
		&u.Qualification, &u.Experience, &u.GuardianName, &u.GuardianPhone, &u.Subjects,
		&u.ClassesAssigned, &u.Permissions, &u.Metadata, &u.Status, &u.CreatedAt, &u.UpdatedAt}
}

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(userDest(u)...)
}

func scanUserWithSchool(row pgx.Row, u *model.User) error {
	return row.Scan(append(userDest(u), &u.School)...)
}

// ListUsers returns users matching f with their school, newest first.
func (r *UserRepository) ListUsers(ctx context.Context, f model.UserFilter) ([]model.User, error) {
	var w where
	w.eq("u.role", string(f.Role))
	w.eq("u.school_id", f.SchoolID)

	rows, err := r.pool.Query(ctx,
		`SELECT `+userWithSchool+` FROM users u`+w.String()+` ORDER BY u.created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUserWithSchool)
}

// GetUser loads one user with its school. A missing user is nil, nil.
func (r *UserRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := scanUserWithSchool(r.pool.QueryRow(ctx,
		`SELECT `+userWithSchool+` FROM users u WHERE u.id = $1`, id), u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser inserts a user profile. When in.ID is set the row takes that id,
// which links it to the credential of the same person.
func (r *UserRepository) CreateUser(ctx context.Context, in *model.User) (*model.User, error) {
	status := in.Status
	if status == "" {
		status = model.StatusActive
	}

	u := &model.User{}
	err := scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users AS u (id, email, name, role, school_id, avatar, phone, address, date_of_birth,
		                      gender, employee_id, student_id, class, department, qualification,
		                      experience, guardian_name, guardian_phone, subjects, classes_assigned,
		                      permissions, metadata, status)
		 VALUES (COALESCE($1::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		         $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		 RETURNING `+userColumns,
		nullable(&in.ID), in.Email, in.Name, in.Role, in.SchoolID, in.Avatar, in.Phone, in.Address,
		in.DateOfBirth, in.Gender, in.EmployeeID, in.StudentID, in.Class, in.Department,
		in.Qualification, in.Experience, in.GuardianName, in.GuardianPhone, strs(in.Subjects),
		strs(in.ClassesAssigned), strs(in.Permissions), object(in.Metadata), status,
	), u)
	if err != nil {
		return nil, translateUnique(err)
	}
	return u, nil
}

// UpdateUserStatus sets the lifecycle status of one user.
func (r *UserRepository) UpdateUserStatus(ctx context.Context, id, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}
