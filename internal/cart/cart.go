package cart

import "github.com/google/uuid"

// Item is one product line in a session cart. Price and name are snapshots
// taken from the catalog when the item was added.
type Item struct {
	ProductID  uuid.UUID `json:"productId"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	PriceCents int       `json:"priceCents"`
	Quantity   int       `json:"quantity"`
	ImageURL   *string   `json:"imageUrl,omitempty"`
}

// Cart is the session-scoped shopping cart. Subtotal and item count are
// derived from the items on every read, never stored.
type Cart struct {
	SessionID string `json:"sessionId"`
	Items     []Item `json:"items"`
}

// SubtotalCents sums price times quantity across all lines.
func (c *Cart) SubtotalCents() int {
	total := 0
	for _, item := range c.Items {
		total += item.PriceCents * item.Quantity
	}
	return total
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) findItem(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) clone() *Cart {
	out := &Cart{SessionID: c.SessionID}
	if len(c.Items) > 0 {
		out.Items = make([]Item, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}
