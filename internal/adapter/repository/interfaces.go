package repository

import (
	"context"

	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// UserRepository reports absent users as (nil, nil); every error wraps a domain sentinel.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	Create(ctx context.Context, name, email, password string) (*entity.User, error)
	ListAll(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, id int64, fields entity.UpdateFields) (*entity.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
}
