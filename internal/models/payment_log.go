package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// PaymentLog
// Audit record of one payment request built by the bridge. The payment
// itself is processed by the external microservices; only the request
// outcome is recorded here.
// ===========================================================================

// PaymentStatus is the request outcome from the bridge's point of view
type PaymentStatus string

const (
	// PaymentStatusGenerated the link/code was generated and replied
	PaymentStatusGenerated PaymentStatus = "generated"

	// PaymentStatusFailed the payment service call failed
	PaymentStatusFailed PaymentStatus = "failed"

	// PaymentStatusRejected the requested method was not recognized
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentLog is one audited payment request
type PaymentLog struct {
	// ID primary key
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`

	// Method requested payment method (card/pix/boleto/unknown)
	Method string `gorm:"type:varchar(16);not null;index" json:"method"`

	// WhatsApp buyer number the request came from
	WhatsApp string `gorm:"type:varchar(32)" json:"whatsapp,omitempty"`

	// Quantity ordered units
	Quantity int `gorm:"not null" json:"quantity"`

	// Amount formatted charge amount ("R$ 2000,00"); empty for card,
	// where the checkout page computes the total from the cart
	Amount string `gorm:"type:varchar(32)" json:"amount,omitempty"`

	// Reference order reference passed to the payment service
	Reference string `gorm:"type:varchar(64);index" json:"reference,omitempty"`

	// Status request outcome
	Status PaymentStatus `gorm:"type:varchar(16);not null" json:"status"`

	// CreatedAt record creation time
	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

// TableName overrides the table name
func (PaymentLog) TableName() string {
	return "payment_logs"
}

// BeforeCreate generates the UUID when the database default is absent
func (p *PaymentLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AllModels returns every model registered for auto migration
func AllModels() []interface{} {
	return []interface{}{
		&MessageLog{},
		&PaymentLog{},
	}
}
