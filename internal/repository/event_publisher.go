package repository

import (
	"context"

	"app/internal/domain/model"
)

// CheckoutEventPublisher は会計完了イベントの発行口。
// 発行は best-effort で、失敗しても会計自体は成立する。
type CheckoutEventPublisher interface {
	PublishCheckedOut(ctx context.Context, sessionID string, sum model.CheckoutSummary) error
}
