package service

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"gift-registry-service/internal/model"

	"gorm.io/gorm"
)

// In-memory doubles for the repositories and the provider client. Mutex
// guarded so the concurrent-delivery tests exercise the same status-guard
// semantics the sqlite predicates give the real implementations.

type fakeGiftRepo struct {
	mu         sync.Mutex
	items      map[string]*model.GiftItem
	paidWrites int // successful MarkPaid transitions observed
}

func newFakeGiftRepo() *fakeGiftRepo {
	return &fakeGiftRepo{items: make(map[string]*model.GiftItem)}
}

func (r *fakeGiftRepo) Create(ctx context.Context, item *model.GiftItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeGiftRepo) FindByID(ctx context.Context, itemID string) (*model.GiftItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeGiftRepo) List(ctx context.Context) ([]*model.GiftItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*model.GiftItem, 0, len(r.items))
	for _, item := range r.items {
		cp := *item
		items = append(items, &cp)
	}
	return items, nil
}

func (r *fakeGiftRepo) IsPaid(ctx context.Context, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	return ok && item.Paid, nil
}

func (r *fakeGiftRepo) MarkPaid(ctx context.Context, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.Paid {
		return false, nil
	}
	item.Paid = true
	item.PaymentStatus = model.PaymentStatusApproved
	r.paidWrites++
	return true, nil
}

// flakyGiftRepo fails the first n MarkPaid calls, then behaves normally.
// Models a gift update dying after the payment record already settled.
type flakyGiftRepo struct {
	*fakeGiftRepo
	mu       sync.Mutex
	failures int
}

func (r *flakyGiftRepo) MarkPaid(ctx context.Context, itemID string) (bool, error) {
	r.mu.Lock()
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return false, errors.New("database is locked")
	}
	r.mu.Unlock()
	return r.fakeGiftRepo.MarkPaid(ctx, itemID)
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[string]*model.PaymentRecord // by preference id
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]*model.PaymentRecord)}
}

func (r *fakeRecordRepo) Create(ctx context.Context, record *model.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records[record.PreferenceID] = &cp
	return nil
}

func (r *fakeRecordRepo) FindByPreferenceID(ctx context.Context, preferenceID string) (*model.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[preferenceID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *record
	return &cp, nil
}

func (r *fakeRecordRepo) FindByExternalReference(ctx context.Context, externalReference string) (*model.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.ExternalReference == externalReference {
			cp := *record
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRecordRepo) LatestPerGiftItem(ctx context.Context) (map[string]*model.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	latest := make(map[string]*model.PaymentRecord, len(r.records))
	for _, record := range r.records {
		existing, ok := latest[record.GiftItemID]
		if !ok || record.CreatedAt.After(existing.CreatedAt) {
			cp := *record
			latest[record.GiftItemID] = &cp
		}
	}
	return latest, nil
}

func (r *fakeRecordRepo) MarkSettled(ctx context.Context, preferenceID, status, rawPayload string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[preferenceID]
	if !ok || record.Status != model.PaymentStatusPending {
		return false, nil
	}
	record.Status = status
	record.RawPayload = rawPayload
	return true, nil
}

func (r *fakeRecordRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]string)}
}

func (r *fakeEventRepo) Exists(ctx context.Context, eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.events[eventID]
	return ok, nil
}

func (r *fakeEventRepo) MarkProcessed(ctx context.Context, eventID, eventType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[eventID] = eventType
	return nil
}

type fakeMercadoPagoClient struct {
	preference *model.PreferenceResult
	prefErr    error
	payment    *model.PaymentResource
	paymentErr error
	verifyErr  error

	mu        sync.Mutex
	prefCalls int
}

func (c *fakeMercadoPagoClient) CreatePreference(ctx context.Context, req *model.PreferenceRequest) (*model.PreferenceResult, error) {
	c.mu.Lock()
	c.prefCalls++
	c.mu.Unlock()
	if c.prefErr != nil {
		return nil, c.prefErr
	}
	return c.preference, nil
}

func (c *fakeMercadoPagoClient) GetPayment(ctx context.Context, paymentID string) (*model.PaymentResource, error) {
	if c.paymentErr != nil {
		return nil, c.paymentErr
	}
	return c.payment, nil
}

func (c *fakeMercadoPagoClient) VerifyWebhookSignature(headers http.Header, dataID string) error {
	return c.verifyErr
}
