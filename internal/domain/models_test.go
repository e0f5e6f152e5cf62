package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFinalPrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    float64
	}{
		{"no discount", Product{Price: 1200}, 1200},
		{"fixed", Product{Price: 1200, DiscountType: DiscountFixed, DiscountValue: 200}, 1000},
		{"percentage", Product{Price: 1200, DiscountType: DiscountPercentage, DiscountValue: 25}, 900},
		{"fixed larger than price", Product{Price: 100, DiscountType: DiscountFixed, DiscountValue: 500}, 0},
		{"unknown type ignored", Product{Price: 100, DiscountType: "bogus", DiscountValue: 50}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.product.FinalPrice(), 0.0001)
		})
	}

	assert.True(t, Product{Price: 10, DiscountType: DiscountFixed, DiscountValue: 1}.HasDiscount())
	assert.False(t, Product{Price: 10}.HasDiscount())
}

func TestProductStockLevel(t *testing.T) {
	assert.Equal(t, StockOut, Product{Stock: 0}.StockLevel())
	assert.Equal(t, StockOut, Product{Stock: -2}.StockLevel())
	assert.Equal(t, StockLow, Product{Stock: 9}.StockLevel())
	assert.Equal(t, StockIn, Product{Stock: 10}.StockLevel())
}

func TestKeysFallBack(t *testing.T) {
	assert.Equal(t, "abc", Category{ID: "abc", Slug: "shoes"}.Key())
	assert.Equal(t, "shoes", Category{Slug: "shoes"}.Key())
	assert.Equal(t, "runner", Product{Slug: "runner"}.Key())
	assert.Equal(t, "INV-7", Order{InvoiceID: "INV-7"}.Key())
	assert.Equal(t, "o1", Order{ID: "o1", InvoiceID: "INV-7"}.Key())
}

func TestCategoryRefDecodesBothShapes(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Runner","category":"c1"}`), &p))
	assert.Equal(t, CategoryRef{ID: "c1"}, p.Category)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Runner","category":{"_id":"c2","name":"Shoes"}}`), &p))
	assert.Equal(t, CategoryRef{ID: "c2", Name: "Shoes"}, p.Category)

	assert.Error(t, json.Unmarshal([]byte(`{"category":42}`), &p))
}

func TestOrderDecodesBackendShape(t *testing.T) {
	raw := `{
		"_id": "65f1",
		"invoiceId": "INV-1001",
		"customer": {"fullName": "Rahim Uddin", "phone": "01700000000", "address": "Dhaka"},
		"paymentMethod": "cod",
		"items": [{"productId": "p1", "qty": 2, "color": "red", "size": "M"}, {"productId": "p2", "qty": 1}],
		"status": "Completed",
		"totalAmount": 2450.5
	}`
	var o Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))

	assert.Equal(t, "INV-1001", o.InvoiceID)
	assert.Equal(t, "Rahim Uddin", o.Customer.FullName)
	assert.Equal(t, PaymentCOD, o.PaymentMethod)
	assert.Equal(t, 3, o.Quantity())
	assert.Equal(t, StatusCompleted, o.Status.Normalized())
	assert.InDelta(t, 2450.5, o.TotalAmount, 0.001)
}

func TestProductFlags(t *testing.T) {
	p := Product{IsNew: true, IsHot: true, IsBestSelling: true}
	assert.Equal(t, []string{"new", "hot", "best-selling"}, p.Flags())
	assert.Empty(t, Product{}.Flags())
}
