package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AdminUserUsecase は管理画面の顧客一覧と有効/停止の切り替え。
type AdminUserUsecase struct {
	users repo.UserRepository
}

func NewAdminUserUsecase(users repo.UserRepository) *AdminUserUsecase {
	return &AdminUserUsecase{users: users}
}

type AdminUserListOutput struct {
	Users []model.User `json:"users"`
}

func (u *AdminUserUsecase) List(ctx context.Context) (AdminUserListOutput, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return AdminUserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return AdminUserListOutput{Users: users}, nil
}

func (u *AdminUserUsecase) SetActive(ctx context.Context, userID int64, isActive bool) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	if err := u.users.SetActive(ctx, userID, isActive); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *user, nil
}
