package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

const userColumns = `user_id, email, username, password_hash, gender, birthday,
		 phone, mobile_phone, from_store, introduced_by, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.UserName, &u.PasswordHash, &u.Gender, &u.Birthday,
		&u.Phone, &u.MobilePhone, &u.FromStore, &u.IntroducedBy, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts user and fills in the timestamps. A duplicate email
// yields common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (user_id, email, username, password_hash, gender, birthday)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.UserName, user.PasswordHash, user.Gender, user.Birthday).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE email = $1
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE user_id = $1
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) ListEmails(ctx context.Context) ([]string, error) {
	query := `SELECT email FROM users ORDER BY created_at, email`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, dbx.MapError(err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}

	return emails, nil
}

// Update applies upd in a single statement and returns the resulting row.
// An unknown userID yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, userID string, upd *models.UserUpdate) (*models.User, error) {
	args := []any{userID, upd.Phone, upd.MobilePhone, upd.FromStore, upd.IntroducedBy}
	set := []string{"phone = $2", "mobile_phone = $3", "from_store = $4", "introduced_by = $5"}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.UserName != nil {
		add("username", *upd.UserName)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.SetBirthday {
		add("birthday", upd.Birthday)
	}
	set = append(set, "updated_at = now()")

	query :=
		`UPDATE users SET ` + strings.Join(set, ", ") + `
		 WHERE user_id = $1
		 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}
