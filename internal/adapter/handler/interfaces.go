package handler

import (
	"context"

	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type UserService interface {
	Create(ctx context.Context, input user.CreateInput) (*entity.User, error)
	Login(ctx context.Context, input user.LoginInput) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, id int64, input user.UpdateInput) (*entity.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
