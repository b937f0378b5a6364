package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MinAmount is the smallest amount the gateway accepts, in XAF.
const MinAmount = 100

// Local mobile-money numbers: 9 digits, leading 6.
var phonePattern = regexp.MustCompile(`^6\d{8}$`)

// Fapshi talks to the Fapshi mobile-money API. Authentication is a static
// apiuser/apikey header pair.
type Fapshi struct {
	baseURL    string
	apiUser    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewFapshi(baseURL, apiUser, apiKey string, log *zap.Logger) *Fapshi {
	return &Fapshi{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiUser: apiUser,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

func (c *Fapshi) InitiatePay(ctx context.Context, req InitiateRequest) (*Result, error) {
	return c.post(ctx, "/initiate-pay", req)
}

func (c *Fapshi) DirectPay(ctx context.Context, req DirectPayRequest) (*Result, error) {
	if res := validateCollect(req.Amount, req.Phone); res != nil {
		return res, nil
	}
	return c.post(ctx, "/direct-pay", req)
}

func (c *Fapshi) Payout(ctx context.Context, req PayoutRequest) (*Result, error) {
	if res := validateCollect(req.Amount, req.Phone); res != nil {
		return res, nil
	}
	return c.post(ctx, "/payouts", req)
}

func (c *Fapshi) PaymentStatus(ctx context.Context, transID string) (*Result, error) {
	if transID == "" {
		return &Result{StatusCode: http.StatusBadRequest, Message: "transaction id required"}, nil
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payment-status/"+transID, nil)
	if err != nil {
		return nil, err
	}
	return c.do(httpReq), nil
}

// validateCollect rejects bad input before any network call. A non-nil
// result is a 400-equivalent failure.
func validateCollect(amount int64, phone string) *Result {
	if amount <= 0 {
		return &Result{StatusCode: http.StatusBadRequest, Message: "amount required"}
	}
	if amount < MinAmount {
		return &Result{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("amount cannot be less than %d XAF", MinAmount)}
	}
	if phone == "" {
		return &Result{StatusCode: http.StatusBadRequest, Message: "phone number required"}
	}
	if !phonePattern.MatchString(phone) {
		return &Result{StatusCode: http.StatusBadRequest, Message: "invalid phone number"}
	}
	return nil
}

func (c *Fapshi) post(ctx context.Context, path string, payload any) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq), nil
}

// wireResponse covers the union of Fapshi response bodies.
type wireResponse struct {
	Message    string `json:"message"`
	TransID    string `json:"transId"`
	Link       string `json:"link"`
	PaymentURL string `json:"paymentUrl"`
	Status     string `json:"status"`
}

// do executes the request and folds every failure mode (transport error,
// timeout, malformed body, non-2xx) into a Result the caller can branch on
// by status code alone.
func (c *Fapshi) do(req *http.Request) *Result {
	req.Header.Set("apiuser", c.apiUser)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("gateway request failed", zap.String("path", req.URL.Path), zap.Error(err))
		return &Result{StatusCode: http.StatusInternalServerError, Message: "API request failed"}
	}
	defer resp.Body.Close()

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		c.log.Warn("gateway returned malformed body",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return &Result{StatusCode: http.StatusInternalServerError, Message: "API request failed"}
	}

	link := wire.Link
	if link == "" {
		link = wire.PaymentURL
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Message:    wire.Message,
		TransID:    wire.TransID,
		Link:       link,
		Status:     wire.Status,
	}
}
