package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gift-registry-service/internal/client"
	"gift-registry-service/internal/config"
	"gift-registry-service/internal/dto"
	"gift-registry-service/internal/model"
	"gift-registry-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	GetStatus(ctx context.Context, preferenceID string) (*dto.StatusResponse, error)
	HandleWebhook(ctx context.Context, headers http.Header, body []byte) error
}

type paymentServiceImpl struct {
	mpClient         client.MercadoPagoClient
	serviceBaseURL   string
	currency         string
	giftItemRepo     repository.GiftItemRepository
	recordRepo       repository.PaymentRecordRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewPaymentService(
	mpClient client.MercadoPagoClient,
	cfg *config.Config,
	giftItemRepo repository.GiftItemRepository,
	recordRepo repository.PaymentRecordRepository,
	webhookEventRepo repository.WebhookEventRepository,
) PaymentService {
	return &paymentServiceImpl{
		mpClient:         mpClient,
		serviceBaseURL:   cfg.BaseURL,
		currency:         cfg.MercadoPago.Currency,
		giftItemRepo:     giftItemRepo,
		recordRepo:       recordRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

// CreateIntent opens a hosted-checkout session for one gift item and persists
// a pending PaymentRecord. The record is only created after the provider call
// succeeds, so a provider failure leaves no ambiguous state behind.
func (s *paymentServiceImpl) CreateIntent(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	if req.GiftItemID == "" || req.Amount <= 0 {
		return nil, fmt.Errorf("%w: gift item id and a positive amount are required", ErrValidation)
	}

	gift, err := s.giftItemRepo.FindByID(ctx, req.GiftItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: gift item %s", ErrNotFound, req.GiftItemID)
		}
		return nil, fmt.Errorf("find gift item: %w", err)
	}

	if gift.Paid {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPaid, gift.ID)
	}

	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = s.serviceBaseURL
	}

	externalReference := uuid.NewString()
	prefReq := &model.PreferenceRequest{
		Items: []model.PreferenceItem{
			{
				ID:         gift.ID,
				Title:      "Wedding gift: " + gift.Name,
				Quantity:   1,
				UnitPrice:  req.Amount,
				CurrencyID: s.currency,
			},
		},
		Payer: model.PreferencePayer{
			Name:  req.BuyerName,
			Email: req.BuyerEmail,
		},
		ExternalReference: externalReference,
		BackURLs: model.BackURLs{
			Success: returnURL,
			Pending: returnURL,
			Failure: returnURL,
		},
		NotificationURL: s.serviceBaseURL + "/api/payments/webhook",
	}

	result, err := s.mpClient.CreatePreference(ctx, prefReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	record := &model.PaymentRecord{
		ID:                uuid.NewString(),
		GiftItemID:        gift.ID,
		PreferenceID:      result.ID,
		ExternalReference: externalReference,
		BuyerEmail:        req.BuyerEmail,
		BuyerName:         req.BuyerName,
		Amount:            req.Amount,
		Status:            model.PaymentStatusPending,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store payment record: %w", err)
	}

	slog.InfoContext(ctx, "payment intent created",
		"gift_item_id", gift.ID,
		"preference_id", result.ID,
		"amount", req.Amount)

	return &dto.CreatePaymentResponse{
		Success:      true,
		PreferenceID: result.ID,
		InitPoint:    result.InitPoint,
	}, nil
}

// GetStatus is the read path shared by the client-side poller and manual
// re-checks. It only consults local rows; settling them is the webhook's job.
func (s *paymentServiceImpl) GetStatus(ctx context.Context, preferenceID string) (*dto.StatusResponse, error) {
	record, err := s.recordRepo.FindByPreferenceID(ctx, preferenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %s", ErrNotFound, preferenceID)
		}
		return nil, fmt.Errorf("find payment record: %w", err)
	}

	gift, err := s.giftItemRepo.FindByID(ctx, record.GiftItemID)
	if err != nil {
		return nil, fmt.Errorf("find gift item: %w", err)
	}

	return &dto.StatusResponse{
		Success: true,
		Payment: &dto.PaymentInfo{
			Status:     record.Status,
			Amount:     record.Amount,
			BuyerEmail: record.BuyerEmail,
			BuyerName:  record.BuyerName,
		},
		GiftItem: &dto.GiftItemInfo{
			ID:            gift.ID,
			Name:          gift.Name,
			Icon:          gift.Icon,
			Price:         gift.Price,
			Paid:          gift.Paid,
			PaymentStatus: gift.PaymentStatus,
		},
	}, nil
}

// HandleWebhook reconciles a provider notification. Nil means acknowledged
// (200), including ignored event kinds and duplicate deliveries. Any error
// after the record settles must surface so the provider redelivers.
func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, headers http.Header, body []byte) error {
	var event model.ProviderWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: decode webhook payload: %v", ErrValidation, err)
	}

	if err := s.mpClient.VerifyWebhookSignature(headers, event.Data.ID); err != nil {
		slog.WarnContext(ctx, "webhook signature rejected", "event_id", event.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != "payment" {
		slog.InfoContext(ctx, "ignoring webhook event kind", "event_id", event.ID, "type", event.Type)
		return nil
	}

	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check processed events: %w", err)
	}
	if processed {
		slog.InfoContext(ctx, "webhook event already processed", "event_id", event.ID)
		return nil
	}

	payment, err := s.mpClient.GetPayment(ctx, event.Data.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	record, err := s.findRecord(ctx, payment)
	if err != nil {
		return err
	}

	if record.Status == model.PaymentStatusApproved {
		// A prior delivery may have settled the record and then failed the
		// gift item update. Completing it here is what makes the provider's
		// retry converge; the paid = false guard keeps the ordinary
		// duplicate-delivery case a no-op.
		if _, err := s.giftItemRepo.MarkPaid(ctx, record.GiftItemID); err != nil {
			return fmt.Errorf("mark gift item paid: %w", err)
		}
		slog.InfoContext(ctx, "payment already approved, acknowledging", "preference_id", record.PreferenceID)
		return s.markEventProcessed(ctx, &event)
	}

	if !model.TerminalStatus(payment.Status) {
		slog.InfoContext(ctx, "payment not settled yet", "preference_id", record.PreferenceID, "status", payment.Status)
		return nil
	}

	rawPayload, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("marshal payment resource: %w", err)
	}

	settled, err := s.recordRepo.MarkSettled(ctx, record.PreferenceID, payment.Status, string(rawPayload))
	if err != nil {
		return fmt.Errorf("settle payment record: %w", err)
	}
	if !settled {
		// A concurrent delivery won the status-guarded update. Still finish
		// the gift item update in case the winner failed between its two
		// writes; the guard makes this a no-op otherwise.
		if payment.Status == model.PaymentStatusApproved {
			if _, err := s.giftItemRepo.MarkPaid(ctx, record.GiftItemID); err != nil {
				return fmt.Errorf("mark gift item paid: %w", err)
			}
		}
		slog.InfoContext(ctx, "payment settled by concurrent delivery", "preference_id", record.PreferenceID)
		return nil
	}

	if payment.Status == model.PaymentStatusApproved {
		if _, err := s.giftItemRepo.MarkPaid(ctx, record.GiftItemID); err != nil {
			// The record is settled but the gift item is not. Surfacing the
			// error makes the provider retry; the already-approved short
			// circuit above then finishes the gift item update.
			return fmt.Errorf("mark gift item paid: %w", err)
		}
	}

	slog.InfoContext(ctx, "payment reconciled",
		"preference_id", record.PreferenceID,
		"gift_item_id", record.GiftItemID,
		"status", payment.Status)

	return s.markEventProcessed(ctx, &event)
}

// findRecord resolves the local record for a provider payment, primarily by
// preference id, falling back to the app-assigned external reference when the
// provider id does not match.
func (s *paymentServiceImpl) findRecord(ctx context.Context, payment *model.PaymentResource) (*model.PaymentRecord, error) {
	if payment.PreferenceID != "" {
		record, err := s.recordRepo.FindByPreferenceID(ctx, payment.PreferenceID)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find payment record: %w", err)
		}
	}

	if payment.ExternalReference != "" {
		record, err := s.recordRepo.FindByExternalReference(ctx, payment.ExternalReference)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find payment record: %w", err)
		}
	}

	slog.WarnContext(ctx, "webhook references unknown payment",
		"payment_id", payment.ID,
		"preference_id", payment.PreferenceID,
		"external_reference", payment.ExternalReference)

	return nil, fmt.Errorf("%w: payment %s", ErrNotFound, payment.ID)
}

func (s *paymentServiceImpl) markEventProcessed(ctx context.Context, event *model.ProviderWebhookEvent) error {
	if err := s.webhookEventRepo.MarkProcessed(ctx, event.ID, event.Type); err != nil {
		// Dedup is best effort; the status guards keep a redelivery harmless.
		slog.WarnContext(ctx, "failed to record processed event", "event_id", event.ID, "error", err)
	}
	return nil
}
