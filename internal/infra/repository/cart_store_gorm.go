package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// CartEntry はカート永続化のKV行（セッション×キー）。
// キーは lines / active_restaurant の2つで、常に同一トランザクションで揃える。
type CartEntry struct {
	SessionID string    `gorm:"primaryKey;type:varchar(64)"`
	Key       string    `gorm:"primaryKey;type:varchar(32)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

const (
	entryKeyLines            = "lines"
	entryKeyActiveRestaurant = "active_restaurant"
)

type CartStoreGorm struct {
	db *gorm.DB
}

// DI
func NewCartStoreGorm(db *gorm.DB) *CartStoreGorm {
	return &CartStoreGorm{db: db}
}

// Load はスナップショットを復元する。
// 保存が無ければ ErrNotFound、読めないJSONなら ErrMalformedSnapshot。
func (s *CartStoreGorm) Load(ctx context.Context, sessionID string) (model.CartSnapshot, error) {
	var entries []CartEntry

	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&entries).Error; err != nil {
		return model.CartSnapshot{}, err
	}

	var linesJSON string
	var active string
	hasLines := false

	for _, e := range entries {
		switch e.Key {
		case entryKeyLines:
			linesJSON = e.Value
			hasLines = true
		case entryKeyActiveRestaurant:
			active = e.Value
		}
	}

	if !hasLines {
		return model.CartSnapshot{}, repo.ErrNotFound
	}

	var lines []model.CartLine
	if err := json.Unmarshal([]byte(linesJSON), &lines); err != nil {
		return model.CartSnapshot{}, repo.ErrMalformedSnapshot
	}

	return model.CartSnapshot{
		Lines:              lines,
		ActiveRestaurantID: model.ID(active),
	}, nil
}

// Save は2エントリを1トランザクションで書く。
// 店舗が無いスナップショットは active_restaurant の行ごと消す（残骸を残さない）。
func (s *CartStoreGorm) Save(ctx context.Context, sessionID string, snap model.CartSnapshot) error {
	lines := snap.Lines
	if lines == nil {
		lines = []model.CartLine{}
	}

	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertEntry(tx, sessionID, entryKeyLines, string(linesJSON)); err != nil {
			return err
		}

		if snap.ActiveRestaurantID == "" {
			return tx.
				Where("session_id = ? AND key = ?", sessionID, entryKeyActiveRestaurant).
				Delete(&CartEntry{}).Error
		}

		return upsertEntry(tx, sessionID, entryKeyActiveRestaurant, string(snap.ActiveRestaurantID))
	})
}

// Delete は両エントリを消す。無ければ何もしない（削除は冪等）。
func (s *CartStoreGorm) Delete(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&CartEntry{}).Error
}

// 既存行は更新、無ければ作成
func upsertEntry(tx *gorm.DB, sessionID string, key string, value string) error {
	var entry CartEntry

	err := tx.
		Where("session_id = ? AND key = ?", sessionID, key).
		First(&entry).Error

	if err == nil {
		return tx.Model(&CartEntry{}).
			Where("session_id = ? AND key = ?", sessionID, key).
			Update("value", value).Error
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Create(&CartEntry{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}).Error
}
