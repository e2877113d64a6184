package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gift-registry-service/internal/config"
	"gift-registry-service/internal/model"
)

var ErrInvalidSignature = errors.New("webhook signature did not verify")

type MercadoPagoClient interface {
	CreatePreference(ctx context.Context, req *model.PreferenceRequest) (*model.PreferenceResult, error)
	GetPayment(ctx context.Context, paymentID string) (*model.PaymentResource, error)
	VerifyWebhookSignature(headers http.Header, dataID string) error
}

type mercadoPagoClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	accessToken   string
	webhookSecret string
}

func NewMercadoPagoClient(mpCfg *config.MercadoPago) MercadoPagoClient {
	return &mercadoPagoClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    mpCfg.BaseApiURL,
		accessToken:   mpCfg.AccessToken,
		webhookSecret: mpCfg.WebhookSecret,
	}
}

func (c *mercadoPagoClientImpl) CreatePreference(ctx context.Context, prefReq *model.PreferenceRequest) (*model.PreferenceResult, error) {
	body, err := json.Marshal(prefReq)
	if err != nil {
		return nil, fmt.Errorf("marshal preference payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/checkout/preferences",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create preference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mercadopago error %d: %s", resp.StatusCode, string(b))
	}

	var result model.PreferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode preference response: %w", err)
	}
	if result.ID == "" {
		return nil, fmt.Errorf("mercadopago returned no preference id")
	}

	return &result, nil
}

func (c *mercadoPagoClientImpl) GetPayment(ctx context.Context, paymentID string) (*model.PaymentResource, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", c.baseApiURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mercadopago error %d: %s", resp.StatusCode, string(b))
	}

	var payment model.PaymentResource
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}

	return &payment, nil
}

// VerifyWebhookSignature checks the x-signature header against the configured
// secret. The signed manifest is "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func (c *mercadoPagoClientImpl) VerifyWebhookSignature(headers http.Header, dataID string) error {
	signature := headers.Get("x-signature")
	if signature == "" {
		return fmt.Errorf("%w: missing x-signature header", ErrInvalidSignature)
	}

	ts, v1, err := parseSignatureHeader(signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, headers.Get("x-request-id"), ts)

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return ErrInvalidSignature
	}

	return nil
}

func parseSignatureHeader(signature string) (ts string, v1 string, err error) {
	for _, part := range strings.Split(signature, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return "", "", fmt.Errorf("malformed x-signature header")
	}
	return ts, v1, nil
}
