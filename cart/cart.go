package cart

import "context"

// Item is one shopper-selected line. Price here is display-only; checkout
// always re-prices from the catalog.
type Item struct {
	Slug       string `json:"slug"`
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
	Qty        int    `json:"qty"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
	Image      string `json:"image,omitempty"`
}

// SameLine reports whether two items collapse into one cart line.
// Identity key is (slug, size, color).
func (i Item) SameLine(other Item) bool {
	return i.Slug == other.Slug && i.Size == other.Size && i.Color == other.Color
}

// Observer receives the full item list after every mutation of a cart.
type Observer func(cartID string, items []Item)

// Repository is the shared cart contract. The browser keeps its own
// localStorage implementation; the server-side implementations below exist
// so both sides speak the same shape and merging rules.
type Repository interface {
	Read(ctx context.Context, cartID string) ([]Item, error)
	Write(ctx context.Context, cartID string, items []Item) error
	Add(ctx context.Context, cartID string, item Item) ([]Item, error)
	Clear(ctx context.Context, cartID string) error
	Subscribe(observer Observer)
}

// merge folds item into items, summing quantities on an identity-key match.
func merge(items []Item, item Item) []Item {
	for i := range items {
		if items[i].SameLine(item) {
			items[i].Qty += item.Qty
			return items
		}
	}
	return append(items, item)
}
