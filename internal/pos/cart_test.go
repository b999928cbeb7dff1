package pos_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"possystem/internal/domain"
	"possystem/internal/money"
	"possystem/internal/pos"
)

func TestCartAddMergesByName(t *testing.T) {
	c := pos.NewCart()
	milo := product("Milo Activ-Go 1kg", "4800016641503", "3.50")

	c.Add(milo)
	l := c.Add(milo)

	assert.Equal(t, 2, l.Quantity)
	assert.Equal(t, money.Cents(700), c.Total())
	assert.Equal(t, 1, c.Len())
}

func TestCartUnitPriceFixedAtFirstScan(t *testing.T) {
	c := pos.NewCart()
	c.Add(product("Milo Activ-Go 1kg", "4800016641503", "3.50"))
	c.Add(product("Milo Activ-Go 1kg", "4800016641503", "9.99"))

	l, ok := c.Line("Milo Activ-Go 1kg")
	require.True(t, ok)
	assert.Equal(t, money.Cents(350), l.UnitPrice)
	assert.Equal(t, money.Cents(700), c.Total())
}

func TestCartRemoveDeletesLineAtZero(t *testing.T) {
	c := pos.NewCart()
	c.Add(product("Milo Activ-Go 1kg", "4800016641503", "3.50"))
	c.Add(product("Milo Activ-Go 1kg", "4800016641503", "3.50"))

	l, ok := c.RemoveByBarcode("4800016641503")
	require.True(t, ok)
	assert.Equal(t, 1, l.Quantity)
	assert.Equal(t, money.Cents(350), c.Total())

	l, ok = c.RemoveByBarcode("4800016641503")
	require.True(t, ok)
	assert.Equal(t, 0, l.Quantity)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, money.Cents(0), c.Total())
	_, found := c.Line("Milo Activ-Go 1kg")
	assert.False(t, found)
}

func TestCartRemoveMissLeavesCartUnchanged(t *testing.T) {
	c := pos.NewCart()
	c.Add(product("Milo Activ-Go 1kg", "4800016641503", "3.50"))
	before := pos.Table(c)

	_, ok := c.RemoveByBarcode("9556466100018")

	assert.False(t, ok)
	assert.Equal(t, before, pos.Table(c))
	assert.Equal(t, money.Cents(350), c.Total())
}

func TestCartLinesKeepScanOrder(t *testing.T) {
	c := pos.NewCart()
	c.Add(product("Gardenia Classic White Bread", "9556466100018", "4.20"))
	c.Add(product("Milo Activ-Go 1kg", "4800016641503", "3.50"))
	c.Add(product("Gardenia Classic White Bread", "9556466100018", "4.20"))

	rows := pos.Table(c)
	require.Len(t, rows, 2)
	assert.Equal(t, pos.Row{Name: "Gardenia Classic White Bread", Quantity: 2, Price: "8.40"}, rows[0])
	assert.Equal(t, pos.Row{Name: "Milo Activ-Go 1kg", Quantity: 1, Price: "3.50"}, rows[1])
}

// Any mix of scans and removals keeps the running total equal to the sum
// of line subtotals, with no line at zero or below.
func TestCartTotalMatchesLinesUnderRandomOps(t *testing.T) {
	products := []domain.Product{
		product("Milo Activ-Go 1kg", "4800016641503", "3.50"),
		product("Gardenia Classic White Bread", "9556466100018", "4.20"),
		product("Dutch Lady Full Cream Milk 1L", "9556040110014", "7.95"),
	}
	rng := rand.New(rand.NewSource(42))
	c := pos.NewCart()

	for i := 0; i < 2000; i++ {
		p := products[rng.Intn(len(products))]
		if rng.Intn(3) == 0 {
			c.RemoveByBarcode(p.Barcode)
		} else {
			c.Add(p)
		}

		var sum money.Cents
		for _, l := range c.Lines() {
			require.Positive(t, l.Quantity, "line %s", l.Name)
			sum += l.Subtotal()
		}
		require.Equal(t, sum, c.Total(), "after op %d", i)
	}
}

func TestCartClear(t *testing.T) {
	c := pos.NewCart()
	c.Add(product("Milo Activ-Go 1kg", "4800016641503", "3.50"))
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "0.00", c.Total().String())
	assert.Empty(t, pos.Table(c))
}
