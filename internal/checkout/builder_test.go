package checkout

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"vendazap/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.PaymentConfig {
	return &config.PaymentConfig{
		CheckoutBaseURL:        "https://pay.example.com",
		ProductID:              "1",
		ProductTitle:           "Widget",
		CheckoutUnitPriceCents: 100000,
	}
}

func TestBuildCartHasOneItemPerUnit(t *testing.T) {
	builder := NewBuilder(testConfig())

	payload := builder.Build(Params{
		Name:     "Maria",
		LastName: "Silva",
		Quantity: 3,
	})

	require.Len(t, payload.Cart, 3)
	for _, item := range payload.Cart {
		assert.Equal(t, "Widget", item.Title)
		assert.Equal(t, 100000, item.UnitPrice)
		assert.Equal(t, 1, item.Quantity)
		assert.True(t, item.Tangible)
	}
	assert.NotEmpty(t, payload.Code)
	assert.Equal(t, "Maria", payload.Customer.Name)
}

func TestBuildZeroQuantity(t *testing.T) {
	builder := NewBuilder(testConfig())

	payload := builder.Build(Params{Quantity: 0})

	assert.Empty(t, payload.Cart)
}

func TestBuildMissingSlotsPropagateAsEmpty(t *testing.T) {
	builder := NewBuilder(testConfig())

	payload := builder.Build(Params{Quantity: 1})

	assert.Empty(t, payload.Customer.Name)
	assert.Empty(t, payload.Customer.Email)
	require.Len(t, payload.Cart, 1)
}

func TestHashRoundTrip(t *testing.T) {
	builder := NewBuilder(testConfig())

	original := builder.Build(Params{
		Name:     "João",
		LastName: "Santos",
		WhatsApp: "+5511999998888",
		Email:    "joao@example.com",
		ShipInfo: "Rua das Flores, 123",
		Quantity: 2,
	})

	hash, err := Hash(original)
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(hash)
	require.NoError(t, err)

	var restored CartPayload
	require.NoError(t, json.Unmarshal(decoded, &restored))

	assert.Equal(t, *original, restored)
}

func TestURLEmbedsHash(t *testing.T) {
	builder := NewBuilder(testConfig())
	payload := builder.Build(Params{Quantity: 1})

	checkoutURL, err := builder.URL(payload)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(checkoutURL, "https://pay.example.com/cart?hash="))

	parsed, err := url.Parse(checkoutURL)
	require.NoError(t, err)

	hash := parsed.Query().Get("hash")
	require.NotEmpty(t, hash)

	decoded, err := base64.StdEncoding.DecodeString(hash)
	require.NoError(t, err)

	var restored CartPayload
	require.NoError(t, json.Unmarshal(decoded, &restored))
	assert.Equal(t, payload.Code, restored.Code)
}
