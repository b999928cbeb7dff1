package pos

import (
	"possystem/internal/domain"
	"possystem/internal/money"
)

// Line is one product in the cart. The unit price is fixed at first scan.
type Line struct {
	Name      string
	Quantity  int
	UnitPrice money.Cents
	Barcode   string
}

// Subtotal is quantity times unit price.
func (l Line) Subtotal() money.Cents { return l.UnitPrice.Mul(l.Quantity) }

// Cart maps product name to line. The running total is maintained on every
// mutation rather than recomputed, and always equals the sum of subtotals.
type Cart struct {
	lines map[string]*Line
	order []string
	total money.Cents
}

func NewCart() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// Add records one unit of p and returns the updated line.
func (c *Cart) Add(p domain.Product) Line {
	l, ok := c.lines[p.Name]
	if !ok {
		l = &Line{Name: p.Name, UnitPrice: p.UnitPrice(), Barcode: p.Barcode}
		c.lines[p.Name] = l
		c.order = append(c.order, p.Name)
	}
	l.Quantity++
	c.total += l.UnitPrice
	return *l
}

// RemoveByBarcode takes one unit off the line whose stored barcode matches.
// A line reaching zero is deleted; the returned line then has Quantity 0.
func (c *Cart) RemoveByBarcode(barcode string) (Line, bool) {
	for _, name := range c.order {
		l := c.lines[name]
		if l.Barcode != barcode {
			continue
		}
		l.Quantity--
		c.total -= l.UnitPrice
		out := *l
		if l.Quantity == 0 {
			c.drop(name)
		}
		return out, true
	}
	return Line{}, false
}

func (c *Cart) drop(name string) {
	delete(c.lines, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
	c.order = nil
	c.total = 0
}

func (c *Cart) Total() money.Cents { return c.total }

func (c *Cart) Len() int { return len(c.order) }

// Line returns the line for a product name.
func (c *Cart) Line(name string) (Line, bool) {
	l, ok := c.lines[name]
	if !ok {
		return Line{}, false
	}
	return *l, true
}

// Lines returns copies in first-scan order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.lines[name])
	}
	return out
}
