package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestDirectPayValidation(t *testing.T) {
	// Any request reaching the server means validation failed to reject
	// the input locally.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer srv.Close()

	client := NewFapshi(srv.URL, "user", "key", zap.NewNop())

	tests := []struct {
		name    string
		amount  int64
		phone   string
		message string
	}{
		{"zero amount", 0, "670000000", "amount required"},
		{"negative amount", -5, "670000000", "amount required"},
		{"below minimum", 99, "670000000", "amount cannot be less than 100 XAF"},
		{"missing phone", 500, "", "phone number required"},
		{"short phone", 500, "6700", "invalid phone number"},
		{"wrong prefix", 500, "770000000", "invalid phone number"},
		{"letters in phone", 500, "67000000a", "invalid phone number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := client.DirectPay(context.Background(), DirectPayRequest{Amount: tt.amount, Phone: tt.phone})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", res.StatusCode)
			}
			if res.Message != tt.message {
				t.Errorf("message = %q, want %q", res.Message, tt.message)
			}
		})
	}
}

func TestDirectPaySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/direct-pay" {
			t.Errorf("path = %s, want /direct-pay", r.URL.Path)
		}
		if r.Header.Get("apiuser") != "user" || r.Header.Get("apikey") != "key" {
			t.Error("missing auth headers")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"payment initiated","transId":"tx123"}`))
	}))
	defer srv.Close()

	client := NewFapshi(srv.URL, "user", "key", zap.NewNop())
	res, err := client.DirectPay(context.Background(), DirectPayRequest{Amount: 500, Phone: "670000000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK() {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if res.TransID != "tx123" {
		t.Errorf("trans id = %q, want tx123", res.TransID)
	}
}

func TestTransportFailureNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := NewFapshi(srv.URL, "user", "key", zap.NewNop())
	res, err := client.InitiatePay(context.Background(), InitiateRequest{Amount: 500, Email: "a@b.cm"})
	if err != nil {
		t.Fatalf("transport errors must not surface as Go errors, got %v", err)
	}
	if res.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", res.StatusCode)
	}
	if res.Message != "API request failed" {
		t.Errorf("message = %q, want API request failed", res.Message)
	}
}

func TestMalformedBodyNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewFapshi(srv.URL, "user", "key", zap.NewNop())
	res, err := client.PaymentStatus(context.Background(), "tx1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusInternalServerError || res.Message != "API request failed" {
		t.Errorf("got (%d, %q), want (500, API request failed)", res.StatusCode, res.Message)
	}
}

func TestPaymentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment-status/tx9" {
			t.Errorf("path = %s, want /payment-status/tx9", r.URL.Path)
		}
		w.Write([]byte(`{"transId":"tx9","status":"SUCCESSFUL"}`))
	}))
	defer srv.Close()

	client := NewFapshi(srv.URL, "user", "key", zap.NewNop())
	res, err := client.PaymentStatus(context.Background(), "tx9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusSuccessful {
		t.Errorf("status = %q, want SUCCESSFUL", res.Status)
	}
}

func TestPaymentStatusEmptyID(t *testing.T) {
	client := NewFapshi("http://unused", "user", "key", zap.NewNop())
	res, err := client.PaymentStatus(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.StatusCode)
	}
}

func TestInitiatePayLinkFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transId":"tx1","paymentUrl":"https://pay.example/tx1"}`))
	}))
	defer srv.Close()

	client := NewFapshi(srv.URL, "user", "key", zap.NewNop())
	res, err := client.InitiatePay(context.Background(), InitiateRequest{Amount: 500, Email: "a@b.cm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Link != "https://pay.example/tx1" {
		t.Errorf("link = %q, want paymentUrl fallback", res.Link)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := []string{StatusSuccessful, StatusFailed, StatusExpired}
	for _, s := range terminal {
		if !IsTerminalStatus(s) {
			t.Errorf("IsTerminalStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{StatusCreated, StatusPending, ""} {
		if IsTerminalStatus(s) {
			t.Errorf("IsTerminalStatus(%q) = true, want false", s)
		}
	}
}
