// Package store contains the PostgreSQL-backed implementations of the
// credential and course store adapters consumed by the auth core. Driver
// errors are translated into the auth package's sentinel errors here so no
// pgx types leak past this boundary.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/user/devlearn-go/auth"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// Users is the pgx-backed credential store adapter.
type Users struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewUsers creates a Users store on the given pool.
func NewUsers(db *pgxpool.Pool, log *logrus.Logger) *Users {
	return &Users{db: db, log: log}
}

// CreateUser persists a new user and fills in the generated id and creation
// time. Email uniqueness is enforced by the database; a collision surfaces
// as auth.ErrDuplicateEmail.
func (s *Users) CreateUser(ctx context.Context, user *auth.User) error {
	query := `INSERT INTO users (email, name, password, roles)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query,
		user.Email, user.Name, user.HashedPassword, rolesToStrings(user.Roles),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "email") {
			return auth.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetUserByID resolves a user by id, excluding the password hash, and loads
// the enrollment set.
func (s *Users) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	query := `SELECT id, email, name, COALESCE(bio, ''), COALESCE(picture, ''), roles, created_at
              FROM users WHERE id = $1`
	user, err := s.scanUser(ctx, s.db.QueryRow(ctx, query, id), false)
	if err != nil {
		return nil, err
	}
	if err := s.loadEnrollments(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail resolves a user by the exact email key, including the
// password hash for credential verification. The email is a case-sensitive
// key: the lookup uses the literal value.
func (s *Users) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT id, email, name, COALESCE(bio, ''), COALESCE(picture, ''), roles, created_at, password
              FROM users WHERE email = $1`
	user, err := s.scanUser(ctx, s.db.QueryRow(ctx, query, email), true)
	if err != nil {
		return nil, err
	}
	if err := s.loadEnrollments(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the mutable profile fields of a user record.
func (s *Users) UpdateProfile(ctx context.Context, id int64, name, bio, picture string) error {
	query := `UPDATE users SET name = $1, bio = $2, picture = $3 WHERE id = $4`
	tag, err := s.db.Exec(ctx, query, name, bio, picture, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

// scanUser scans a single user row. withPassword controls whether the
// trailing password column is expected.
func (s *Users) scanUser(ctx context.Context, row pgx.Row, withPassword bool) (*auth.User, error) {
	var user auth.User
	var roles []string

	dest := []interface{}{
		&user.ID, &user.Email, &user.Name, &user.Bio, &user.Picture, &roles, &user.CreatedAt,
	}
	if withPassword {
		dest = append(dest, &user.HashedPassword)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}

	user.Roles = s.parseRoles(roles)
	return &user, nil
}

// parseRoles validates stored role strings against the closed enumeration.
// Unknown values are dropped with a warning instead of failing the fetch.
func (s *Users) parseRoles(raw []string) []auth.Role {
	parsed := make([]auth.Role, 0, len(raw))
	for _, r := range raw {
		role, ok := auth.ParseRole(r)
		if !ok {
			s.log.WithField("role", r).Warn("dropping unrecognized role from user record")
			continue
		}
		parsed = append(parsed, role)
	}
	return parsed
}

// loadEnrollments fills the user's enrollment set from the join table.
func (s *Users) loadEnrollments(ctx context.Context, user *auth.User) error {
	rows, err := s.db.Query(ctx, `SELECT course_id FROM enrollments WHERE user_id = $1`, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var courseID int64
		if err := rows.Scan(&courseID); err != nil {
			return err
		}
		user.CourseIDs = append(user.CourseIDs, courseID)
	}
	return rows.Err()
}

// rolesToStrings converts the closed role enumeration back to the text[]
// representation stored in the database.
func rolesToStrings(roles []auth.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// Courses is the pgx-backed course store adapter.
type Courses struct {
	db *pgxpool.Pool
}

// NewCourses creates a Courses store on the given pool.
func NewCourses(db *pgxpool.Pool) *Courses {
	return &Courses{db: db}
}

// GetCourseBySlug resolves a course by its unique slug.
func (s *Courses) GetCourseBySlug(ctx context.Context, slug string) (*auth.Course, error) {
	var course auth.Course
	query := `SELECT id, slug, name FROM courses WHERE slug = $1`
	err := s.db.QueryRow(ctx, query, slug).Scan(&course.ID, &course.Slug, &course.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}
