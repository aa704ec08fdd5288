package model

// CartLine はカートの明細。
// 価格と表示属性は追加時点のスナップショットで、以後カタログとは同期しない。
type CartLine struct {
	ItemID      ID     `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
	IsVeg       bool   `json:"is_veg"`
	Quantity    int64  `json:"quantity"`
}

// CartSnapshot は永続化と復元に使うカートの静的コピー。
// ActiveRestaurantID は明細が空のときに限り空になる。
type CartSnapshot struct {
	Lines              []CartLine `json:"lines"`
	ActiveRestaurantID ID         `json:"active_restaurant_id,omitempty"`
}

// CheckoutSummary は会計完了の確定内容。
// 注文はサーバ側に永続化しないので、これが会計の最終成果物になる。
type CheckoutSummary struct {
	OrderRef      string     `json:"order_ref"`
	RestaurantID  ID         `json:"restaurant_id"`
	Lines         []CartLine `json:"lines"`
	TotalAmount   int64      `json:"total_amount"`
	TotalQuantity int64      `json:"total_quantity"`
}
