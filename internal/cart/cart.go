// Package cart holds the in-progress purchase of a POS session.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"shoepos/internal/models"
)

// Cart is an insertion-ordered set of lines keyed by variant id. The zero
// value is not usable; construct with New.
type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
}

func New() *Cart {
	return &Cart{lines: make([]models.CartLine, 0)}
}

// AddItem increments the line for variant, or appends a new line. A
// quantity <= 0 adds one unit. Stock is not checked here.
func (c *Cart) AddItem(product models.Product, variant models.ProductVariant, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(variant.VariantID); i >= 0 {
		c.lines[i].Quantity += quantity
		return
	}
	c.lines = append(c.lines, models.CartLine{
		Product:  product,
		Variant:  variant,
		Quantity: quantity,
	})
}

// RemoveItem drops the line for variantID, if any.
func (c *Cart) RemoveItem(variantID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(variantID)
}

// UpdateQuantity overwrites a line's quantity. Zero or below removes it.
func (c *Cart) UpdateQuantity(variantID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(variantID)
		return
	}
	if i := c.indexOf(variantID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make([]models.CartLine, 0)
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalAmount sums product price times quantity over all lines.
func (c *Cart) TotalAmount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sumLines(c.lines)
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for variantID.
func (c *Cart) Line(variantID int64) (models.CartLine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(variantID); i >= 0 {
		return c.lines[i], true
	}
	return models.CartLine{}, false
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

func (c *Cart) indexOf(variantID int64) int {
	for i, l := range c.lines {
		if l.Variant.VariantID == variantID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeLocked(variantID int64) {
	if i := c.indexOf(variantID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SumLines totals lines with decimal arithmetic.
func SumLines(lines []models.CartLine) float64 {
	return sumLines(lines)
}

func sumLines(lines []models.CartLine) float64 {
	total := decimal.Zero
	for _, l := range lines {
		price := decimal.NewFromFloat(l.Product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	f, _ := total.Float64()
	return f
}
