package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 保存済みスナップショットが読めない（呼び出し側は空カートに落とす）
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// CartStore はセッション単位のカート永続化。
// lines と active_restaurant の2エントリは必ず同時に更新する。
type CartStore interface {
	Load(ctx context.Context, sessionID string) (model.CartSnapshot, error)
	Save(ctx context.Context, sessionID string, snap model.CartSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}
