package model

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
)

// TerminalStatus reports whether a provider payment status settles a record.
func TerminalStatus(status string) bool {
	switch status {
	case PaymentStatusApproved, PaymentStatusRejected, PaymentStatusCancelled:
		return true
	}
	return false
}

type GiftItem struct {
	ID            string `gorm:"primaryKey;size:64;not null"`
	Name          string `gorm:"size:128;not null"`
	Icon          string `gorm:"size:32;not null"`             // closed set, validated at the edge
	Price         int64  `gorm:"not null"`                     // cents; 0 means no suggested price
	Paid          bool   `gorm:"not null;default:false;index"` // set at most once, by reconciliation
	PaymentStatus string `gorm:"size:32;not null;default:'pending'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PaymentRecord struct {
	ID string `gorm:"primaryKey;size:64;not null"` // uuid
	// FK → gift_item.id
	GiftItemID string `gorm:"size:64;index;not null"`
	// provider-assigned checkout session id
	PreferenceID string `gorm:"size:128;uniqueIndex;not null"`
	// app-assigned id echoed back by the provider, webhook fallback lookup key
	ExternalReference string `gorm:"size:64;index;not null"`
	BuyerEmail        string `gorm:"size:128;not null"`
	BuyerName         string `gorm:"size:128"`
	Amount            int64  `gorm:"not null"`               // cents
	Status            string `gorm:"size:32;index;not null"` // pending, approved, rejected, cancelled
	RawPayload        string `gorm:"type:text"`              // last provider payload, kept for diagnostics
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;uniqueIndex;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

type RSVP struct {
	ID         uint   `gorm:"primaryKey"`
	GuestEmail string `gorm:"size:128;uniqueIndex;not null"`
	GuestName  string `gorm:"size:128;not null"`
	Attending  bool   `gorm:"not null"`
	PartySize  int32  `gorm:"not null;default:1"`
	Note       string `gorm:"size:512"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
