package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fernwood/authd/internal/auth/domain"
	"github.com/fernwood/authd/internal/auth/store"
	"github.com/fernwood/authd/pkg/cryptox"
	"github.com/fernwood/authd/pkg/idx"
)

const userColumns = `id, email, first_name, last_name, password_hash, role, is_active, created_at, updated_at`

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) FindByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, p store.CreateUserParams) (domain.User, error) {
	if p.Password == "" {
		return domain.User{}, fmt.Errorf("sqlite: create user: password required")
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	role := p.Role
	if role == "" {
		role = domain.RoleMember
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash,
		u.Role.String(), u.Active, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	return u, nil
}

// UpdateUser applies the non-nil fields. The password hash is recomputed
// if and only if a non-empty plaintext password is supplied in this write;
// an empty or absent password leaves the existing hash untouched.
func (r *usersRepo) UpdateUser(ctx context.Context, id string, p store.UpdateUserParams) (domain.User, error) {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)

	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *p.Email)
	}
	if p.Password != nil && *p.Password != "" {
		hash, err := cryptox.HashPassword(*p.Password)
		if err != nil {
			return domain.User{}, err
		}
		sets = append(sets, "password_hash = ?")
		args = append(args, hash)
	}
	if p.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *p.FirstName)
	}
	if p.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *p.LastName)
	}
	if p.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, p.Role.String())
	}
	if p.Active != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *p.Active)
	}

	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC())
		args = append(args, id)

		res, err := r.db.ExecContext(ctx,
			`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return domain.User{}, mapConstraint(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.User{}, store.ErrNotFound
		}
	}

	return r.FindByID(ctx, id)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) CountUsers(ctx context.Context, f store.ListFilter) (int64, error) {
	where, args := filterClause(f)

	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&count)
	return count, err
}

func (r *usersRepo) ListUsers(ctx context.Context, f store.ListFilter) ([]domain.User, error) {
	where, args := filterClause(f)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func filterClause(f store.ListFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Active != nil {
		conds = append(conds, "is_active = ?")
		args = append(args, *f.Active)
	}
	if f.Role != nil {
		conds = append(conds, "role = ?")
		args = append(args, f.Role.String())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var role string

	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Role = domain.Role(role)
	return u, nil
}
