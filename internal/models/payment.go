package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment purposes
const (
	PaymentPurposeStandalone       = "standalone"
	PaymentPurposeTrainingPurchase = "training_purchase"
)

// Payment is one externally initiated payment attempt outside the escrow
// flow. Status mirrors the gateway's last known state and is refreshed by
// explicit status checks and the reconciliation worker.
type Payment struct {
	ID          uuid.UUID  `json:"id"`
	Amount      int64      `json:"amount"` // minor currency units
	Email       string     `json:"email"`
	UserID      uuid.UUID  `json:"user_id"`
	ExternalID  string     `json:"external_id"` // caller correlation id
	TransID     string     `json:"trans_id"`    // gateway transaction id
	Status      string     `json:"status"`
	PaymentLink *string    `json:"payment_link,omitempty"`
	Purpose     string     `json:"purpose"`
	TrainingID  *uuid.UUID `json:"training_id,omitempty"` // training purchases only
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
