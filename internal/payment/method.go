package payment

// ===========================================================================
// Payment Method
// The dialogue collects the payment method as free text in pt-BR. The
// literal values below are the exact options the agent offers; anything
// else resolves to MethodUnknown and gets the invalid-method reply.
// ===========================================================================

// Method is the buyer's chosen payment method
type Method int

const (
	// MethodUnknown unrecognized slot value
	MethodUnknown Method = iota

	// MethodCard credit card via the hosted checkout page
	MethodCard

	// MethodPix instant payment via generated Pix code
	MethodPix

	// MethodBoleto bank slip via the boleto generator
	MethodBoleto
)

// ParseMethod resolves the metodopagamento slot value
func ParseMethod(value string) Method {
	switch value {
	case "Cartão de Crédito":
		return MethodCard
	case "Pix":
		return MethodPix
	case "Boleto":
		return MethodBoleto
	default:
		return MethodUnknown
	}
}

// String returns the method name for logging and audit records
func (m Method) String() string {
	switch m {
	case MethodCard:
		return "card"
	case MethodPix:
		return "pix"
	case MethodBoleto:
		return "boleto"
	default:
		return "unknown"
	}
}
