package payment

import (
	"context"
	"fmt"
	"time"

	"vendazap/internal/checkout"
	"vendazap/internal/config"
	"vendazap/internal/models"
	"vendazap/internal/nlu"
	"vendazap/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Payment Method Router
// Terminal branch of the checkout dialogue: picks the payment rail from
// the collected method slot and produces the reply segments carrying the
// payment link or code. Every external call is synchronous; a failure
// surfaces as an error to the webhook layer, which logs it and replies
// with silence (the platform's fallback covers the user side).
// ===========================================================================

// Order is the dialogue slot snapshot a payment request is built from
type Order struct {
	checkout.Params

	// Method parsed payment method
	Method Method

	// Document buyer CPF/CNPJ, required only by the boleto branch
	Document string
}

// Router resolves an order into payment reply segments
type Router struct {
	builder *checkout.Builder
	pix     PixGenerator
	boleto  BoletoGenerator
	cfg     *config.PaymentConfig
	store   store.Store
	logger  *zap.Logger
}

// NewRouter creates a payment router
func NewRouter(
	builder *checkout.Builder,
	pix PixGenerator,
	boleto BoletoGenerator,
	cfg *config.PaymentConfig,
	auditStore store.Store,
	logger *zap.Logger,
) *Router {
	return &Router{
		builder: builder,
		pix:     pix,
		boleto:  boleto,
		cfg:     cfg,
		store:   auditStore,
		logger:  logger,
	}
}

// Process builds the payment for the order and returns the reply
// segments, in the order the user should receive them
func (r *Router) Process(ctx context.Context, order *Order) ([]nlu.Message, error) {
	switch order.Method {
	case MethodCard:
		return r.processCard(ctx, order)
	case MethodPix:
		return r.processPix(ctx, order)
	case MethodBoleto:
		return r.processBoleto(ctx, order)
	default:
		return r.processUnknown(ctx, order), nil
	}
}

// processCard builds the cart hash and replies with the checkout link
func (r *Router) processCard(ctx context.Context, order *Order) ([]nlu.Message, error) {
	payload := r.builder.Build(order.Params)

	checkoutURL, err := r.builder.URL(payload)
	if err != nil {
		r.recordPayment(ctx, order, "", "", models.PaymentStatusFailed)
		return nil, fmt.Errorf("build checkout url: %w", err)
	}

	r.logger.Info("card checkout generated",
		zap.String("code", payload.Code),
		zap.Int("items", len(payload.Cart)),
	)
	r.recordPayment(ctx, order, "", payload.Code, models.PaymentStatusGenerated)

	return []nlu.Message{
		nlu.NewTextMessage("Pedido registrado! Finalize o pagamento no cartão pelo link abaixo:"),
		nlu.NewTextMessage(checkoutURL),
	}, nil
}

// processPix generates a Pix charge and replies with link and code
func (r *Router) processPix(ctx context.Context, order *Order) ([]nlu.Message, error) {
	amount := FormatAmountBRL(order.Quantity * r.cfg.PaymentUnitPrice)
	reference := uuid.New().String()

	resp, err := r.pix.Generate(ctx, &PixRequest{
		KeyType:   r.cfg.PixKeyType,
		Key:       r.cfg.PixKey,
		Name:      r.cfg.PixMerchantName,
		City:      r.cfg.PixMerchantCity,
		Amount:    amount,
		Reference: reference,
	})
	if err != nil {
		r.recordPayment(ctx, order, amount, reference, models.PaymentStatusFailed)
		return nil, fmt.Errorf("generate pix: %w", err)
	}

	r.logger.Info("pix charge generated",
		zap.String("amount", amount),
		zap.String("reference", reference),
	)
	r.recordPayment(ctx, order, amount, reference, models.PaymentStatusGenerated)

	return []nlu.Message{
		nlu.NewTextMessage(fmt.Sprintf("Seu Pix de %s foi gerado! Pague pelo link abaixo:", amount)),
		nlu.NewTextMessage(resp.ShareURL),
		nlu.NewTextMessage("Ou copie o código e pague no app do seu banco:"),
		nlu.NewTextMessage(resp.Code),
	}, nil
}

// processBoleto generates a bank slip due five days out and replies
// with the document link
func (r *Router) processBoleto(ctx context.Context, order *Order) ([]nlu.Message, error) {
	now := time.Now()
	amount := FormatAmountBRL(order.Quantity * r.cfg.PaymentUnitPrice)
	dueDate := AddDays(now, 5)

	resp, err := r.boleto.Generate(ctx, &BoletoRequest{
		Bank:           r.cfg.BoletoBank,
		Valor:          amount,
		DataDocumento:  FormatDateBR(now),
		DataVencimento: FormatDateBR(dueDate),
		Agencia:        r.cfg.BoletoAgencia,
		LocalPagamento: r.cfg.BoletoLocalPgto,
		Cedente:        r.cfg.BoletoCedente,
		DocCedente:     r.cfg.BoletoDocCedente,
		Sacado:         fmt.Sprintf("%s %s", order.Name, order.LastName),
		DocSacado:      order.Document,
		ContaCorrente:  r.cfg.BoletoContaCorrente,
		Convenio:       r.cfg.BoletoConvenio,
		NossoNumero:    fmt.Sprintf("%d", now.Unix()),
	})
	if err != nil {
		r.recordPayment(ctx, order, amount, "", models.PaymentStatusFailed)
		return nil, fmt.Errorf("generate boleto: %w", err)
	}

	r.logger.Info("boleto generated",
		zap.String("amount", amount),
		zap.String("due_date", FormatDateBR(dueDate)),
	)
	r.recordPayment(ctx, order, amount, "", models.PaymentStatusGenerated)

	return []nlu.Message{
		nlu.NewTextMessage(fmt.Sprintf("Seu boleto de %s vence em %s. Acesse pelo link abaixo:", amount, FormatDateBR(dueDate))),
		nlu.NewTextMessage(resp.URL),
	}, nil
}

// processUnknown replies with the invalid-method message; no external
// call is made
func (r *Router) processUnknown(ctx context.Context, order *Order) []nlu.Message {
	r.logger.Warn("unrecognized payment method",
		zap.String("whatsapp", order.WhatsApp),
	)
	r.recordPayment(ctx, order, "", "", models.PaymentStatusRejected)

	return []nlu.Message{
		nlu.NewTextMessage("Forma de pagamento inválida. Escolha entre Cartão de Crédito, Pix ou Boleto."),
	}
}

// recordPayment writes the audit record for one payment request
func (r *Router) recordPayment(ctx context.Context, order *Order, amount, reference string, status models.PaymentStatus) {
	r.store.RecordPayment(ctx, &models.PaymentLog{
		Method:    order.Method.String(),
		WhatsApp:  order.WhatsApp,
		Quantity:  order.Quantity,
		Amount:    amount,
		Reference: reference,
		Status:    status,
	})
}
