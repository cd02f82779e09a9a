package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// UserRepository implementa repository.UserRepository en memoria.
type UserRepository struct{ v view }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		u.ID = st.next("users")
		cp := *u
		st.users[u.ID] = &cp
		return nil
	})
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				cp := *u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) UpdateRole(_ context.Context, id int64, role string) error {
	return r.v.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.Role = role
		return nil
	})
}
