package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"vendazap/internal/checkout"
	"vendazap/internal/config"
	"vendazap/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePix records generator calls
type fakePix struct {
	calls []*PixRequest
	resp  *PixResponse
	err   error
}

func (f *fakePix) Generate(ctx context.Context, req *PixRequest) (*PixResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// fakeBoleto records generator calls
type fakeBoleto struct {
	calls []*BoletoRequest
	resp  *BoletoResponse
	err   error
}

func (f *fakeBoleto) Generate(ctx context.Context, req *BoletoRequest) (*BoletoResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func routerConfig() *config.PaymentConfig {
	return &config.PaymentConfig{
		CheckoutBaseURL:        "https://pay.example.com",
		ProductID:              "1",
		ProductTitle:           "Widget",
		CheckoutUnitPriceCents: 100000,
		PaymentUnitPrice:       1000,
		PixKeyType:             "cnpj",
		PixKey:                 "12345678000199",
		PixMerchantName:        "Loja Teste",
		PixMerchantCity:        "Sao Paulo",
		BoletoBank:             "001",
		BoletoAgencia:          "1234-5",
		BoletoContaCorrente:    "67890-1",
		BoletoConvenio:         "1234567",
		BoletoCedente:          "Loja Teste LTDA",
		BoletoDocCedente:       "12345678000199",
		BoletoLocalPgto:        "Pagavel em qualquer banco",
	}
}

func newTestRouter(cfg *config.PaymentConfig, pix PixGenerator, boleto BoletoGenerator) *Router {
	builder := checkout.NewBuilder(cfg)
	return NewRouter(builder, pix, boleto, cfg, store.NewNoop(), zap.NewNop())
}

func TestProcessCardRepliesWithCheckoutLink(t *testing.T) {
	pix := &fakePix{}
	boleto := &fakeBoleto{}
	router := newTestRouter(routerConfig(), pix, boleto)

	messages, err := router.Process(context.Background(), &Order{
		Params: checkout.Params{
			Name:     "Maria",
			LastName: "Silva",
			Quantity: 2,
		},
		Method: MethodCard,
	})
	require.NoError(t, err)

	require.Len(t, messages, 2)
	link := messages[1].PlainText()
	assert.True(t, strings.HasPrefix(link, "https://pay.example.com/cart?hash="))

	// The checkout page must be able to decode the cart back out
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(parsed.Query().Get("hash"))
	require.NoError(t, err)

	var cart checkout.CartPayload
	require.NoError(t, json.Unmarshal(decoded, &cart))
	assert.Len(t, cart.Cart, 2)
	assert.Equal(t, "Maria", cart.Customer.Name)

	// Card checkout never touches the other rails
	assert.Empty(t, pix.calls)
	assert.Empty(t, boleto.calls)
}

func TestProcessPixAmountFormat(t *testing.T) {
	pix := &fakePix{resp: &PixResponse{
		ShareURL: "https://pix.example.com/c/abc",
		Code:     "00020126330014br.gov.bcb.pix",
	}}
	router := newTestRouter(routerConfig(), pix, &fakeBoleto{})

	messages, err := router.Process(context.Background(), &Order{
		Params: checkout.Params{Quantity: 2},
		Method: MethodPix,
	})
	require.NoError(t, err)

	require.Len(t, pix.calls, 1)
	assert.Equal(t, "R$ 2000,00", pix.calls[0].Amount)
	assert.Equal(t, "cnpj", pix.calls[0].KeyType)
	assert.Equal(t, "Loja Teste", pix.calls[0].Name)
	assert.NotEmpty(t, pix.calls[0].Reference)

	// Reply carries the share URL and the copy-and-paste code, in order
	require.Len(t, messages, 4)
	assert.Equal(t, "https://pix.example.com/c/abc", messages[1].PlainText())
	assert.Equal(t, "00020126330014br.gov.bcb.pix", messages[3].PlainText())
}

func TestProcessPixFailurePropagates(t *testing.T) {
	pix := &fakePix{err: assert.AnError}
	router := newTestRouter(routerConfig(), pix, &fakeBoleto{})

	_, err := router.Process(context.Background(), &Order{
		Params: checkout.Params{Quantity: 1},
		Method: MethodPix,
	})
	require.Error(t, err)
}

func TestProcessBoletoDueDateFiveDaysOut(t *testing.T) {
	boleto := &fakeBoleto{resp: &BoletoResponse{URL: "https://boleto.example.com/doc/1"}}
	router := newTestRouter(routerConfig(), &fakePix{}, boleto)

	messages, err := router.Process(context.Background(), &Order{
		Params: checkout.Params{
			Name:     "João",
			LastName: "Santos",
			Quantity: 3,
		},
		Method:   MethodBoleto,
		Document: "123.456.789-00",
	})
	require.NoError(t, err)

	require.Len(t, boleto.calls, 1)
	req := boleto.calls[0]

	now := time.Now()
	assert.Equal(t, FormatDateBR(now), req.DataDocumento)
	assert.Equal(t, FormatDateBR(AddDays(now, 5)), req.DataVencimento)
	assert.Equal(t, "R$ 3000,00", req.Valor)
	assert.Equal(t, "João Santos", req.Sacado)
	assert.Equal(t, "123.456.789-00", req.DocSacado)
	assert.Equal(t, "001", req.Bank)

	require.Len(t, messages, 2)
	assert.Equal(t, "https://boleto.example.com/doc/1", messages[1].PlainText())
}

func TestProcessUnknownMethodNoExternalCall(t *testing.T) {
	pix := &fakePix{}
	boleto := &fakeBoleto{}
	router := newTestRouter(routerConfig(), pix, boleto)

	messages, err := router.Process(context.Background(), &Order{
		Params: checkout.Params{Quantity: 1},
		Method: ParseMethod("Cash"),
	})
	require.NoError(t, err)

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].PlainText(), "inválida")
	assert.Empty(t, pix.calls)
	assert.Empty(t, boleto.calls)
}
