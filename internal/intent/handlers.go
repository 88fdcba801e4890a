package intent

import (
	"context"
	"fmt"

	"vendazap/internal/checkout"
	"vendazap/internal/payment"

	"go.uber.org/zap"
)

// ===========================================================================
// Intent Handlers
// Slot names (nome, quantidade, metodopagamento, ...) match the agent
// configuration on the NLU platform.
// ===========================================================================

// Slot names collected by the dialogue
const (
	slotName      = "nome"
	slotLastName  = "sobrenome"
	slotEmail     = "email"
	slotAddress   = "endereco"
	slotDocument  = "cpf"
	slotQuantity  = "quantidade"
	slotMethod    = "metodopagamento"
	orderContext  = "pedido"
	orderLifespan = 5
)

// WelcomeHandler greets the user and presents the product
func WelcomeHandler(productTitle string) HandlerFunc {
	return func(ctx context.Context, conv Conversation) error {
		conv.AddText("Olá! Bem-vindo ao nosso atendimento no WhatsApp. 👋")
		conv.AddText(fmt.Sprintf("Aqui você pode tirar dúvidas e comprar %s. Digite *pedido* para começar.", productTitle))
		return nil
	}
}

// FallbackHandler answers utterances the platform could not match.
// Exactly two segments, fixed order.
func FallbackHandler() HandlerFunc {
	return func(ctx context.Context, conv Conversation) error {
		conv.AddText("Desculpe, não entendi. 🤔")
		conv.AddText("Você pode perguntar sobre o produto, preços, ou digitar *pedido* para comprar.")
		return nil
	}
}

// OrderHandler confirms the collected order slots back to the user and
// persists them into the order context for the payment step
func OrderHandler(logger *zap.Logger) HandlerFunc {
	return func(ctx context.Context, conv Conversation) error {
		params := conv.Parameters()

		name := StringParam(params, slotName)
		quantity := IntParam(params, slotQuantity)

		logger.Info("order slots collected",
			zap.String("session", conv.Session()),
			zap.Int("quantity", quantity),
		)

		conv.AddText(fmt.Sprintf(
			"Perfeito, %s! Seu pedido de %d unidade(s) está quase pronto.",
			name, quantity,
		))
		conv.AddText("Como você prefere pagar? Cartão de Crédito, Pix ou Boleto?")

		// Carry every collected slot into the payment turn
		conv.SetContext(orderContext, orderLifespan, params)

		return nil
	}
}

// PaymentHandler resolves the payment method slot and delegates to the
// payment router; the router's reply segments go out verbatim
func PaymentHandler(router *payment.Router, logger *zap.Logger) HandlerFunc {
	return func(ctx context.Context, conv Conversation) error {
		params := conv.Parameters()

		order := &payment.Order{
			Params: checkout.Params{
				Name:     StringParam(params, slotName),
				LastName: StringParam(params, slotLastName),
				WhatsApp: conv.Session(),
				Email:    StringParam(params, slotEmail),
				ShipInfo: StringParam(params, slotAddress),
				Quantity: IntParam(params, slotQuantity),
			},
			Method:   payment.ParseMethod(StringParam(params, slotMethod)),
			Document: StringParam(params, slotDocument),
		}

		messages, err := router.Process(ctx, order)
		if err != nil {
			return fmt.Errorf("process payment: %w", err)
		}

		conv.AddMessages(messages)
		return nil
	}
}

// NewDefaultRegistry wires the full dispatch table
func NewDefaultRegistry(router *payment.Router, productTitle string, logger *zap.Logger) *Registry {
	registry := NewRegistry()

	registry.Register(IntentWelcome, WelcomeHandler(productTitle))
	registry.Register(IntentFallback, FallbackHandler())
	registry.Register(IntentOrder, OrderHandler(logger))
	registry.Register(IntentPayment, PaymentHandler(router, logger))

	return registry
}
