package model

import (
	"encoding/json"
	"strings"
)

// BoolFlag はCatalogServiceが 0/1 と true/false を混在して返すフラグ用。
type BoolFlag bool

func (f *BoolFlag) UnmarshalJSON(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "true", "1":
		*f = true
		return nil
	case "false", "0", "null":
		*f = false
		return nil
	}

	// "true"/"1" が文字列で来るケース
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Item はカタログの商品レコード。フィールド名はCatalogServiceのJSONに合わせる。
type Item struct {
	ItemID         ID       `json:"item_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          int64    `json:"price"`
	IsVeg          BoolFlag `json:"is_veg"`
	Category       string   `json:"category"`
	RestaurantID   ID       `json:"restaurant_id"`
	RestaurantName string   `json:"restaurant_name"`
}

// Restaurant は /restaurants/location/{location} のレコード。
type Restaurant struct {
	RestaurantID   ID     `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	CuisineType    string `json:"cuisine_type"`
	Locality       string `json:"locality"`
	Price          int64  `json:"price"`
}
