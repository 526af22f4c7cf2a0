package cart

import (
	"maps"

	"github.com/kozaktomas/face-kiosk/internal/backend"
	"github.com/kozaktomas/face-kiosk/internal/config"
)

// Cart maps catalog item names to accumulated positions. Carts are
// treated as immutable snapshots: mutations return a new map so a cart
// already handed to a rendering layer never changes underneath it.
type Cart map[string]backend.CartItem

// Add returns a new snapshot with the item added. A known item has its
// count incremented instead of creating a duplicate entry.
func (c Cart) Add(item config.CatalogItem) Cart {
	next := make(Cart, len(c)+1)
	maps.Copy(next, c)

	if entry, ok := next[item.Name]; ok {
		entry.Count++
		next[item.Name] = entry
	} else {
		next[item.Name] = backend.CartItem{
			Name:  item.Name,
			Price: item.Price,
			Image: item.Image,
			Count: 1,
		}
	}
	return next
}

// LineTotal is the price of one cart position. Always computed, never
// cached, so it stays consistent with the entry count.
func LineTotal(entry backend.CartItem) float64 {
	return entry.Price * float64(entry.Count)
}

// HistoryLineTotal is the price of one line of a past order.
func HistoryLineTotal(item backend.LineItem) float64 {
	return item.Price * float64(item.Count)
}

// Total sums all line totals of the cart.
func (c Cart) Total() float64 {
	var total float64
	for _, entry := range c {
		total += LineTotal(entry)
	}
	return total
}
