package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure UserRepo implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación PostgreSQL del repositorio de usuarios.
type UserRepo struct {
	q Querier
}

func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create inserta el usuario; email repetido devuelve domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `INSERT INTO users (email, password, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		strings.ToLower(u.Email), u.PasswordHash, u.Name, u.Role, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return storageErr("create user", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT id, email, password, name, role, created_at FROM users WHERE id = $1`, id)
}

// GetByEmail compara sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT id, email, password, name, role, created_at FROM users WHERE email = $1`,
		strings.ToLower(email))
}

func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return storageErr("update user role", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return &u, nil
}
