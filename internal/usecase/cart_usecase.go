package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// RestaurantConflictError は別店舗の商品を混ぜようとしたときの結果。
// 状態は一切変更しない。捨てて作り直すかどうかはUI側の判断で、
// 確定する場合は Replace が呼ばれる。
type RestaurantConflictError struct {
	ActiveRestaurantID    model.ID
	RequestedRestaurantID model.ID
}

func (e *RestaurantConflictError) Error() string {
	return fmt.Sprintf("restaurant conflict: active=%s requested=%s", e.ActiveRestaurantID, e.RequestedRestaurantID)
}

// IDGenerator は注文参照番号の採番口（mainでuuid実装を渡す）。
type IDGenerator interface {
	NewID() string
}

// cartSession は1ブラウザセッション分のカート本体。
// lines は追加順＝表示順。activeRestaurantID は lines が空のときに限り空。
type cartSession struct {
	lines              []model.CartLine
	activeRestaurantID model.ID
}

// CartUsecase はカートセッションの唯一の所有者。
// すべての変更はここを通り、変更のたびにストアへ同期書き込みする。
// echoは並行にリクエストを捌くので、レジストリ全体を1つのmutexで直列化する
// （マルチタブは従来どおり後勝ち）。
type CartUsecase struct {
	store     repo.CartStore
	publisher repo.CheckoutEventPublisher
	idGen     IDGenerator

	mu       sync.Mutex
	sessions map[string]*cartSession
}

// DI
func NewCartUsecase(store repo.CartStore, publisher repo.CheckoutEventPublisher, idGen IDGenerator) *CartUsecase {
	return &CartUsecase{
		store:     store,
		publisher: publisher,
		idGen:     idGen,
		sessions:  make(map[string]*cartSession),
	}
}

// AddItem / Replace の入力。
// RestaurantID は店舗文脈の無い導線（おすすめレール等）では空で、
// その場合は商品自身の restaurant_id に倣う。
type AddItemInput struct {
	Item         model.Item
	RestaurantID model.ID
}

type CartOutput struct {
	Lines              []model.CartLine `json:"lines"`
	ActiveRestaurantID model.ID         `json:"active_restaurant_id,omitempty"`
	TotalAmount        int64            `json:"total_amount"`
	TotalQuantity      int64            `json:"total_quantity"`
}

type CheckoutOutput struct {
	OrderRef      string `json:"order_ref"`
	TotalAmount   int64  `json:"total_amount"`
	TotalQuantity int64  `json:"total_quantity"`
}

// Get は現在のカートを返す（初回はストアから復元）。
func (u *CartUsecase) Get(ctx context.Context, sessionID string) (CartOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "session required")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.session(ctx, sessionID)
	return u.output(s), nil
}

// AddItem は商品を1つ追加する（同一商品は数量加算、価格は最初の追加時のまま）。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddItemInput) (CartOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "session required")
	}

	item := in.Item
	item.ItemID = model.NormalizeID(string(item.ItemID))
	if item.ItemID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}
	if item.Price < 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	restaurantID := resolveRestaurantID(in)

	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.session(ctx, sessionID)

	// 別店舗の商品は混ぜない
	if s.activeRestaurantID != "" && restaurantID != "" && restaurantID != s.activeRestaurantID {
		return CartOutput{}, &RestaurantConflictError{
			ActiveRestaurantID:    s.activeRestaurantID,
			RequestedRestaurantID: restaurantID,
		}
	}

	// 空カートへの最初の追加は店舗が決まらないと不変条件を満たせない
	if len(s.lines) == 0 && restaurantID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "restaurant required")
	}

	if s.activeRestaurantID == "" && restaurantID != "" {
		s.activeRestaurantID = restaurantID
	}

	if i := indexOfLine(s.lines, item.ItemID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, newCartLine(item))
	}

	u.persist(ctx, sessionID, s)
	return u.output(s), nil
}

// RemoveItem は数量を1減らし、0になる明細は消す。
// 無い明細の削除は no-op（エラーにしない）。
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, rawItemID string) (CartOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "session required")
	}

	itemID := model.NormalizeID(rawItemID)

	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.session(ctx, sessionID)

	i := indexOfLine(s.lines, itemID)
	if i < 0 {
		return u.output(s), nil
	}

	if s.lines[i].Quantity > 1 {
		s.lines[i].Quantity--
	} else {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}

	if len(s.lines) == 0 {
		s.activeRestaurantID = ""
	}

	u.persist(ctx, sessionID, s)
	return u.output(s), nil
}

// Replace は店舗衝突の解決パス。既存カートを無条件に捨てて新店舗で作り直す。
func (u *CartUsecase) Replace(ctx context.Context, sessionID string, in AddItemInput) (CartOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "session required")
	}

	item := in.Item
	item.ItemID = model.NormalizeID(string(item.ItemID))
	if item.ItemID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}
	if item.Price < 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	restaurantID := resolveRestaurantID(in)
	if restaurantID == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "restaurant required")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.session(ctx, sessionID)
	s.lines = []model.CartLine{newCartLine(item)}
	s.activeRestaurantID = restaurantID

	u.persist(ctx, sessionID, s)
	return u.output(s), nil
}

// Clear は明示的な空カートへのリセット。永続側の2エントリも消す。
func (u *CartUsecase) Clear(ctx context.Context, sessionID string) (CartOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "session required")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.session(ctx, sessionID)
	s.lines = nil
	s.activeRestaurantID = ""

	_ = u.store.Delete(ctx, sessionID)
	return u.output(s), nil
}

// Checkout は合計を確定してイベントを発行し、カートを空に戻す。
func (u *CartUsecase) Checkout(ctx context.Context, sessionID string) (CheckoutOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "session required")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.session(ctx, sessionID)
	if len(s.lines) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	sum := model.CheckoutSummary{
		OrderRef:      u.idGen.NewID(),
		RestaurantID:  s.activeRestaurantID,
		Lines:         copyLines(s.lines),
		TotalAmount:   totalAmount(s.lines),
		TotalQuantity: totalQuantity(s.lines),
	}

	// 発行失敗で会計は失敗させない
	_ = u.publisher.PublishCheckedOut(ctx, sessionID, sum)

	s.lines = nil
	s.activeRestaurantID = ""
	_ = u.store.Delete(ctx, sessionID)

	return CheckoutOutput{
		OrderRef:      sum.OrderRef,
		TotalAmount:   sum.TotalAmount,
		TotalQuantity: sum.TotalQuantity,
	}, nil
}

// LineFor は指定商品の明細を返す（正規化済みIDで比較）。
func (u *CartUsecase) LineFor(ctx context.Context, sessionID string, rawItemID string) (model.CartLine, bool) {
	itemID := model.NormalizeID(rawItemID)

	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.session(ctx, sessionID)
	if i := indexOfLine(s.lines, itemID); i >= 0 {
		return s.lines[i], true
	}
	return model.CartLine{}, false
}

// session はセッションのカートを返す。初回はストアから復元する。
// 無い・壊れている・読めないスナップショットは空カート扱いで、
// セッションの構築自体は失敗させない。
func (u *CartUsecase) session(ctx context.Context, sessionID string) *cartSession {
	if s, ok := u.sessions[sessionID]; ok {
		return s
	}

	s := &cartSession{}
	if snap, err := u.store.Load(ctx, sessionID); err == nil {
		s.lines = snap.Lines
		s.activeRestaurantID = snap.ActiveRestaurantID
		// 復元データにも不変条件を適用する
		if len(s.lines) == 0 {
			s.lines = nil
			s.activeRestaurantID = ""
		}
	}

	u.sessions[sessionID] = s
	return s
}

// persist は現在状態をストアへ書く。失敗してもメモリ上の状態が正で、
// 次の操作が全量スナップショットを書き直すのがそのまま再試行になる。
func (u *CartUsecase) persist(ctx context.Context, sessionID string, s *cartSession) {
	_ = u.store.Save(ctx, sessionID, model.CartSnapshot{
		Lines:              copyLines(s.lines),
		ActiveRestaurantID: s.activeRestaurantID,
	})
}

func (u *CartUsecase) output(s *cartSession) CartOutput {
	return CartOutput{
		Lines:              copyLines(s.lines),
		ActiveRestaurantID: s.activeRestaurantID,
		TotalAmount:        totalAmount(s.lines),
		TotalQuantity:      totalQuantity(s.lines),
	}
}

// 店舗IDは呼び出し側の文脈を優先し、無ければ商品自身のものに倣う
func resolveRestaurantID(in AddItemInput) model.ID {
	if id := model.NormalizeID(string(in.RestaurantID)); id != "" {
		return id
	}
	return model.NormalizeID(string(in.Item.RestaurantID))
}

// 追加時点の価格・表示属性をそのまま写す
func newCartLine(item model.Item) model.CartLine {
	return model.CartLine{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Description: item.Description,
		UnitPrice:   item.Price,
		IsVeg:       bool(item.IsVeg),
		Quantity:    1,
	}
}

func indexOfLine(lines []model.CartLine, itemID model.ID) int {
	for i, l := range lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

func totalAmount(lines []model.CartLine) int64 {
	var total int64 = 0
	for _, l := range lines {
		total += l.UnitPrice * l.Quantity
	}
	return total
}

func totalQuantity(lines []model.CartLine) int64 {
	var total int64 = 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

func copyLines(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}
