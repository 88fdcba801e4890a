package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// MessageLog
// Audit record of one message that crossed the bridge, in either
// direction. Dialogue state stays on the NLU platform; this table only
// exists for traceability.
// ===========================================================================

// MessageDirection marks whether a message entered or left the bridge
type MessageDirection string

const (
	// DirectionInbound user -> bridge (gateway webhook)
	DirectionInbound MessageDirection = "inbound"

	// DirectionOutbound bridge -> user (gateway send API)
	DirectionOutbound MessageDirection = "outbound"
)

// MessageLog is one audited message
type MessageLog struct {
	// ID primary key
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`

	// Direction inbound or outbound
	Direction MessageDirection `gorm:"type:varchar(10);not null;index" json:"direction"`

	// From sender number (whatsapp:+55...)
	From string `gorm:"column:from_number;type:varchar(32);not null" json:"from"`

	// To recipient number
	To string `gorm:"column:to_number;type:varchar(32);not null" json:"to"`

	// Body text content; empty for media-only segments
	Body string `gorm:"type:text" json:"body"`

	// MediaURL optional media attachment
	MediaURL string `gorm:"type:text" json:"media_url,omitempty"`

	// Intent matched intent display name, when known
	Intent string `gorm:"type:varchar(128);index" json:"intent,omitempty"`

	// CreatedAt record creation time
	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

// TableName overrides the table name
func (MessageLog) TableName() string {
	return "message_logs"
}

// BeforeCreate generates the UUID when the database default is absent
func (m *MessageLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
