package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gift-registry-service/internal/dto"
	"gift-registry-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type stubPaymentService struct {
	createResp *dto.CreatePaymentResponse
	createErr  error
	statusResp *dto.StatusResponse
	statusErr  error
	webhookErr error
}

func (s *stubPaymentService) CreateIntent(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubPaymentService) GetStatus(ctx context.Context, preferenceID string) (*dto.StatusResponse, error) {
	return s.statusResp, s.statusErr
}

func (s *stubPaymentService) HandleWebhook(ctx context.Context, headers http.Header, body []byte) error {
	return s.webhookErr
}

type echoValidator struct {
	validate *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newEcho(svc service.PaymentService) *echo.Echo {
	e := echo.New()
	e.Validator = &echoValidator{validate: validator.New()}

	h := NewPaymentHandler(svc)
	e.POST("/api/payments/create", h.CreatePayment)
	e.GET("/api/payments/status/:preferenceID", h.GetStatus)
	e.POST("/api/payments/webhook", h.Webhook)
	return e
}

func TestCreatePaymentValidatesBody(t *testing.T) {
	e := newEcho(&stubPaymentService{})

	cases := map[string]string{
		"missing amount":   `{"gift_item_id":"gift-1","buyer_email":"ana@x.com","buyer_name":"Ana"}`,
		"negative amount":  `{"gift_item_id":"gift-1","amount":-1,"buyer_email":"ana@x.com","buyer_name":"Ana"}`,
		"missing gift id":  `{"amount":20000,"buyer_email":"ana@x.com","buyer_name":"Ana"}`,
		"bad email":        `{"gift_item_id":"gift-1","amount":20000,"buyer_email":"nope","buyer_name":"Ana"}`,
		"not json at all":  `pay me`,
	}

	for name, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/payments/create", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestCreatePaymentSuccess(t *testing.T) {
	e := newEcho(&stubPaymentService{
		createResp: &dto.CreatePaymentResponse{
			Success:      true,
			PreferenceID: "pref-123",
			InitPoint:    "https://checkout.example.com/pref-123",
		},
	})

	body := `{"gift_item_id":"gift-1","amount":20000,"buyer_email":"ana@x.com","buyer_name":"Ana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "pref-123") {
		t.Fatalf("response missing preference id: %s", rec.Body.String())
	}
}

func TestCreatePaymentErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: gift-1", service.ErrAlreadyPaid), http.StatusConflict},
		{fmt.Errorf("%w: gift item x", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: 503", service.ErrPaymentProvider), http.StatusBadGateway},
		{fmt.Errorf("%w: bad amount", service.ErrValidation), http.StatusBadRequest},
	}

	body := `{"gift_item_id":"gift-1","amount":20000,"buyer_email":"ana@x.com","buyer_name":"Ana"}`
	for _, tc := range cases {
		e := newEcho(&stubPaymentService{createErr: tc.err})
		req := httptest.NewRequest(http.MethodPost, "/api/payments/create", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.code {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.code)
		}
		if !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Fatalf("error body missing success flag: %s", rec.Body.String())
		}
	}
}

func TestWebhookStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"acknowledged", nil, http.StatusOK},
		{"bad signature", fmt.Errorf("%w: hmac mismatch", service.ErrInvalidSignature), http.StatusBadRequest},
		{"unknown payment", fmt.Errorf("%w: payment pay-9", service.ErrNotFound), http.StatusNotFound},
		{"partial failure", fmt.Errorf("mark gift item paid: disk full"), http.StatusInternalServerError},
		{"provider unreachable", fmt.Errorf("%w: timeout", service.ErrPaymentProvider), http.StatusBadGateway},
	}

	for _, tc := range cases {
		e := newEcho(&stubPaymentService{webhookErr: tc.err})
		req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{"id":"evt-1","type":"payment","data":{"id":"pay-1"}}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.code {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.code)
		}
	}
}

func TestGetStatus(t *testing.T) {
	e := newEcho(&stubPaymentService{
		statusResp: &dto.StatusResponse{
			Success: true,
			Payment: &dto.PaymentInfo{Status: "pending", Amount: 20000, BuyerEmail: "ana@x.com"},
			GiftItem: &dto.GiftItemInfo{
				ID: "gift-1", Name: "Luna de miel", Icon: "honeymoon",
				PaymentStatus: "pending",
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/payments/status/pref-123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"pending"`) {
		t.Fatalf("body missing payment status: %s", rec.Body.String())
	}
}

func TestGetStatusUnknownPreference(t *testing.T) {
	e := newEcho(&stubPaymentService{
		statusErr: fmt.Errorf("%w: payment pref-x", service.ErrNotFound),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/payments/status/pref-x", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
