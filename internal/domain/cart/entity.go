// internal/domain/cart/entity.go
package cart

import "time"

// LineItem is one product in the cart. JSON names match the snapshot the
// browser storefront keeps in local storage, so snapshots load unchanged.
type LineItem struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Image         string  `json:"image,omitempty"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discountPrice,omitempty"`
	PV            float64 `json:"pv,omitempty"`
	Quantity      int     `json:"quantity"`
	InStock       bool    `json:"inStock"`
}

// UnitPrice returns the discount price when set, the list price otherwise
func (i LineItem) UnitPrice() float64 {
	if i.DiscountPrice > 0 {
		return i.DiscountPrice
	}
	return i.Price
}

// LineTotal is the effective unit price times quantity
func (i LineItem) LineTotal() float64 {
	return i.UnitPrice() * float64(i.Quantity)
}

// LinePV is the point value times quantity
func (i LineItem) LinePV() float64 {
	return i.PV * float64(i.Quantity)
}

// Product describes a line item before it has a quantity
type Product struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Image         string  `json:"image,omitempty"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discountPrice,omitempty"`
	PV            float64 `json:"pv,omitempty"`
	InStock       bool    `json:"inStock"`
}

func (p Product) lineItem(quantity int) LineItem {
	return LineItem{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Image:         p.Image,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		PV:            p.PV,
		Quantity:      quantity,
		InStock:       p.InStock,
	}
}

// State is the cart contents plus aggregates derived from them
type State struct {
	Items       []LineItem `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount float64    `json:"totalAmount"`
	TotalPV     float64    `json:"totalPV"`
}

// NewState builds a State from items, computing the aggregates
func NewState(items []LineItem) State {
	if items == nil {
		items = []LineItem{}
	}
	state := State{Items: items}
	for _, item := range items {
		state.TotalItems += item.Quantity
		state.TotalAmount += item.LineTotal()
		state.TotalPV += item.LinePV()
	}
	return state
}

// Find returns the line item for productID
func (s State) Find(productID string) (LineItem, bool) {
	if i := s.indexOf(productID); i >= 0 {
		return s.Items[i], true
	}
	return LineItem{}, false
}

// IsEmpty reports whether the cart has no items
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s State) indexOf(productID string) int {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Kinds of cart notifications
const (
	NotificationSuccess = "success"
	NotificationInfo    = "info"
)

// Notification is a transient user-facing message describing a cart action
type Notification struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	ProductID string `json:"productId,omitempty"`
}

// Snapshot is the database row holding a serialized cart
type Snapshot struct {
	Key       string     `gorm:"column:cart_key;primaryKey;size:191" json:"key"`
	Items     string     `gorm:"type:jsonb;not null" json:"items"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName overrides the table name
func (Snapshot) TableName() string {
	return "cart_snapshots"
}
