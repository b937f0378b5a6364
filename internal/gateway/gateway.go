package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// Gateway payment statuses as reported by payment-status.
const (
	StatusCreated    = "CREATED"
	StatusPending    = "PENDING"
	StatusSuccessful = "SUCCESSFUL"
	StatusFailed     = "FAILED"
	StatusExpired    = "EXPIRED"
)

// IsTerminalStatus reports whether the gateway will never move the payment
// out of this status again.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusSuccessful, StatusFailed, StatusExpired:
		return true
	}
	return false
}

type InitiateRequest struct {
	Amount      int64  `json:"amount"`
	Email       string `json:"email"`
	UserID      string `json:"userId"`
	ExternalID  string `json:"externalId"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Message     string `json:"message,omitempty"`
}

type DirectPayRequest struct {
	Amount     int64  `json:"amount"`
	Phone      string `json:"phone"`
	Medium     string `json:"medium,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	UserID     string `json:"userId,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
	Message    string `json:"message,omitempty"`
}

type PayoutRequest struct {
	Amount     int64  `json:"amount"`
	Phone      string `json:"phone"`
	Medium     string `json:"medium,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	UserID     string `json:"userId,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Result is the uniform outcome of every gateway call. StatusCode is the
// authoritative success signal: 200 means the call succeeded, anything else
// is a failure, transport errors included. Callers never see raw transport
// errors.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	TransID    string `json:"transId,omitempty"`
	Link       string `json:"link,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (r *Result) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Err converts a failed Result into an *Error. Calling it on a successful
// result is a programming error.
func (r *Result) Err() *Error {
	return &Error{StatusCode: r.StatusCode, Message: r.Message}
}

// Error carries the gateway's own status code so the HTTP boundary can
// propagate it verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.StatusCode)
}

// Client is the single payment-gateway abstraction both money paths go
// through. Implementations must be safe for concurrent use.
type Client interface {
	// InitiatePay creates a hosted-checkout payment and returns its
	// transaction id.
	InitiatePay(ctx context.Context, req InitiateRequest) (*Result, error)
	// DirectPay pushes a collect request to the payer's phone. Input is
	// validated before any network I/O.
	DirectPay(ctx context.Context, req DirectPayRequest) (*Result, error)
	// Payout disburses funds to a phone number.
	Payout(ctx context.Context, req PayoutRequest) (*Result, error)
	// PaymentStatus polls the current status of a transaction.
	PaymentStatus(ctx context.Context, transID string) (*Result, error)
}
