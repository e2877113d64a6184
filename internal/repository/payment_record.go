package repository

import (
	"context"
	"time"

	"gift-registry-service/internal/model"

	"gorm.io/gorm"
)

type PaymentRecordRepository interface {
	Create(ctx context.Context, record *model.PaymentRecord) error
	FindByPreferenceID(ctx context.Context, preferenceID string) (*model.PaymentRecord, error)
	FindByExternalReference(ctx context.Context, externalReference string) (*model.PaymentRecord, error)
	LatestPerGiftItem(ctx context.Context) (map[string]*model.PaymentRecord, error)
	MarkSettled(ctx context.Context, preferenceID, status, rawPayload string) (bool, error)
}

type paymentRecordRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRecordRepository(db *gorm.DB) PaymentRecordRepository {
	return &paymentRecordRepoImpl{
		db: db,
	}
}

func (r *paymentRecordRepoImpl) Create(ctx context.Context, record *model.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *paymentRecordRepoImpl) FindByPreferenceID(ctx context.Context, preferenceID string) (*model.PaymentRecord, error) {
	var record model.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("preference_id = ?", preferenceID).
		First(&record).Error

	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *paymentRecordRepoImpl) FindByExternalReference(ctx context.Context, externalReference string) (*model.PaymentRecord, error) {
	var record model.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("external_reference = ?", externalReference).
		First(&record).Error

	if err != nil {
		return nil, err
	}

	return &record, nil
}

// LatestPerGiftItem returns the most recent payment attempt for each gift item.
func (r *paymentRecordRepoImpl) LatestPerGiftItem(ctx context.Context) (map[string]*model.PaymentRecord, error) {
	var records []*model.PaymentRecord
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&records).Error

	if err != nil {
		return nil, err
	}

	latest := make(map[string]*model.PaymentRecord, len(records))
	for _, record := range records {
		latest[record.GiftItemID] = record
	}

	return latest, nil
}

// MarkSettled moves a record from pending to a terminal status. The status
// predicate makes the transition happen at most once: whichever delivery loses
// the race affects zero rows and must not re-run the gift item update.
func (r *paymentRecordRepoImpl) MarkSettled(ctx context.Context, preferenceID, status, rawPayload string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.PaymentRecord{}).
		Where("preference_id = ? AND status = ?", preferenceID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"raw_payload": rawPayload,
			"updated_at":  time.Now(),
		})

	return result.RowsAffected > 0, result.Error
}
