package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 通知先メールの解決にだけ使う
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (model.User, error)
}
