package checkout

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"vendazap/internal/config"

	"github.com/google/uuid"
)

// ===========================================================================
// Checkout Payload Builder
// Builds the cart object the card checkout page expects and serializes
// it into the hash query parameter: JSON, newlines stripped, base64.
// The cart is never stored; it lives only inside the generated URL.
// ===========================================================================

// Customer identifies the buyer inside the cart payload
type Customer struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	WhatsApp string `json:"whatsApp"`
	Email    string `json:"email"`
	ShipInfo string `json:"shipInfo"`
}

// Item is one cart line item
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	UnitPrice int    `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Tangible  bool   `json:"tangible"`
}

// CartPayload is the full object embedded in the checkout URL
type CartPayload struct {
	Code     string   `json:"code"`
	Customer Customer `json:"customer"`
	Cart     []Item   `json:"cart"`
}

// Params is the dialogue slot snapshot needed to build a cart. Missing
// slots arrive as zero values; the builder does not validate them.
type Params struct {
	Name     string
	LastName string
	WhatsApp string
	Email    string
	ShipInfo string
	Quantity int
}

// Builder constructs cart payloads for the single configured product
type Builder struct {
	baseURL        string
	productID      string
	productTitle   string
	unitPriceCents int
}

// NewBuilder creates a checkout builder
func NewBuilder(cfg *config.PaymentConfig) *Builder {
	return &Builder{
		baseURL:        strings.TrimRight(cfg.CheckoutBaseURL, "/"),
		productID:      cfg.ProductID,
		productTitle:   cfg.ProductTitle,
		unitPriceCents: cfg.CheckoutUnitPriceCents,
	}
}

// Build assembles a CartPayload with exactly params.Quantity line items,
// one per unit, all at the configured unit price
func (b *Builder) Build(params Params) *CartPayload {
	payload := &CartPayload{
		Code: uuid.New().String(),
		Customer: Customer{
			Name:     params.Name,
			LastName: params.LastName,
			WhatsApp: params.WhatsApp,
			Email:    params.Email,
			ShipInfo: params.ShipInfo,
		},
		Cart: make([]Item, 0, params.Quantity),
	}

	for i := 0; i < params.Quantity; i++ {
		payload.Cart = append(payload.Cart, Item{
			ID:        b.productID,
			Title:     b.productTitle,
			UnitPrice: b.unitPriceCents,
			Quantity:  1,
			Tangible:  true,
		})
	}

	return payload
}

// Hash serializes the payload into the base64 token the checkout page
// decodes on its side
func Hash(payload *CartPayload) (string, error) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal cart payload: %w", err)
	}

	// The checkout page chokes on embedded newlines; strip them before
	// encoding to match its decoder
	compact := strings.ReplaceAll(string(jsonBytes), "\n", "")

	return base64.StdEncoding.EncodeToString([]byte(compact)), nil
}

// URL builds the full checkout link for a cart
func (b *Builder) URL(payload *CartPayload) (string, error) {
	hash, err := Hash(payload)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/cart?hash=%s", b.baseURL, url.QueryEscape(hash)), nil
}
