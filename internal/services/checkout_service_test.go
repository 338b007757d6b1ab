// internal/services/checkout_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elite1357/store-backend/internal/config"
	"github.com/elite1357/store-backend/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Payment: config.PaymentConfig{
			Currency: "usd",
		},
		Frontend: config.FrontendConfig{
			BaseURL: "https://shop.example.com",
		},
	}
}

func TestBuildSessionParamsAggregateLine(t *testing.T) {
	order := &models.Order{
		ID: uuid.New(),
		Items: []models.OrderItem{
			{ProductTitle: "Runner", UnitPrice: 1000, Quantity: 2},
			{ProductTitle: "Trail", UnitPrice: 500, Quantity: 1},
		},
	}

	params := BuildSessionParams(order, testConfig())

	require.Len(t, params.LineItems, 1)
	line := params.LineItems[0]
	assert.Equal(t, int64(1), *line.Quantity)
	assert.Equal(t, int64(2500), *line.PriceData.UnitAmount)
	assert.Equal(t, "usd", *line.PriceData.Currency)
	assert.Equal(t, "1357 ELITE order", *line.PriceData.ProductData.Name)

	assert.Equal(t, order.ID.String(), *params.ClientReferenceID)
	assert.Equal(t, "https://shop.example.com/payment_success", *params.SuccessURL)
	assert.Equal(t, "https://shop.example.com/cart", *params.CancelURL)
	assert.Equal(t, "payment", *params.Mode)
}

func TestBuildSessionParamsEmptyOrder(t *testing.T) {
	order := &models.Order{ID: uuid.New()}

	params := BuildSessionParams(order, testConfig())

	require.Len(t, params.LineItems, 1)
	assert.Equal(t, int64(0), *params.LineItems[0].PriceData.UnitAmount)
}

func TestRenderCartSummary(t *testing.T) {
	added := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	order := &models.Order{
		Items: []models.OrderItem{
			{ProductTitle: "Runner", UnitPrice: 1000, Quantity: 2, AddedAt: added},
		},
	}

	body, err := RenderCartSummary(order)
	require.NoError(t, err)

	assert.Contains(t, body, "Runner")
	assert.Contains(t, body, "x2")
	assert.Contains(t, body, "2000")
	assert.Contains(t, body, "2026-03-14 09:30")
	assert.Contains(t, body, "Total: 2000 (2 items)")
}

func TestRenderCartSummaryEscapesTitle(t *testing.T) {
	order := &models.Order{
		Items: []models.OrderItem{
			{ProductTitle: "<script>alert(1)</script>", UnitPrice: 1, Quantity: 1},
		},
	}

	body, err := RenderCartSummary(order)
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
