package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoepos/internal/models"
)

func product(id int64, price float64) models.Product {
	return models.Product{ProductID: id, ProductName: "P", Price: price, Quantity: 10, CategoryID: 1}
}

func variant(id, productID int64, stock int) models.ProductVariant {
	return models.ProductVariant{VariantID: id, ProductID: productID, Stock: stock}
}

func TestAddItem_IncrementsExistingLine(t *testing.T) {
	c := New()
	p := product(1, 50)
	v := variant(10, 1, 5)

	c.AddItem(p, v, 1)
	c.AddItem(p, v, 2)

	require.Equal(t, 1, c.Len())
	line, ok := c.Line(10)
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
}

func TestAddItem_DefaultsToOne(t *testing.T) {
	c := New()
	c.AddItem(product(1, 50), variant(10, 1, 5), 0)
	c.AddItem(product(1, 50), variant(11, 1, 5), -4)

	assert.Equal(t, 2, c.TotalItems())
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	c := New()
	c.AddItem(product(1, 10), variant(30, 1, 5), 1)
	c.AddItem(product(2, 10), variant(10, 2, 5), 1)
	c.AddItem(product(3, 10), variant(20, 3, 5), 1)
	c.AddItem(product(2, 10), variant(10, 2, 5), 1)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(30), items[0].Variant.VariantID)
	assert.Equal(t, int64(10), items[1].Variant.VariantID)
	assert.Equal(t, int64(20), items[2].Variant.VariantID)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.AddItem(product(1, 50), variant(10, 1, 5), 2)

	c.UpdateQuantity(10, 7)
	line, _ := c.Line(10)
	assert.Equal(t, 7, line.Quantity, "overwrites without a stock bound")

	c.UpdateQuantity(99, 3)
	assert.Equal(t, 1, c.Len(), "unknown variant is a no-op")

	c.UpdateQuantity(10, 0)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantity_NegativeRemoves(t *testing.T) {
	c := New()
	c.AddItem(product(1, 50), variant(10, 1, 5), 2)
	c.UpdateQuantity(10, -1)
	assert.True(t, c.IsEmpty())
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(product(1, 50), variant(10, 1, 5), 2)
	c.AddItem(product(2, 20), variant(20, 2, 5), 1)

	c.RemoveItem(10)
	c.RemoveItem(404)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(20), items[0].Variant.VariantID)
}

func TestTotals(t *testing.T) {
	c := New()
	c.AddItem(product(1, 50), variant(10, 1, 5), 2)
	c.AddItem(product(2, 20), variant(20, 2, 5), 1)

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 120.0, c.TotalAmount())
}

func TestTotalAmount_DecimalPrecision(t *testing.T) {
	c := New()
	c.AddItem(product(1, 0.1), variant(10, 1, 5), 3)
	c.AddItem(product(2, 0.2), variant(20, 2, 5), 1)

	assert.Equal(t, 0.5, c.TotalAmount())
}

func TestTotalAmount_UsesProductPrice(t *testing.T) {
	c := New()
	p := product(1, 40)
	c.AddItem(p, variant(10, 1, 5), 1)
	c.AddItem(p, variant(11, 1, 5), 1)

	assert.Equal(t, 80.0, c.TotalAmount())
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(product(1, 50), variant(10, 1, 5), 2)
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalAmount())
}

func TestItems_ReturnsCopy(t *testing.T) {
	c := New()
	c.AddItem(product(1, 50), variant(10, 1, 5), 2)

	items := c.Items()
	items[0].Quantity = 99

	line, _ := c.Line(10)
	assert.Equal(t, 2, line.Quantity)
}

func TestConcurrentAdds(t *testing.T) {
	c := New()
	p := product(1, 1)
	v := variant(10, 1, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddItem(p, v, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, c.TotalItems())
	assert.Equal(t, 1, c.Len())
}
