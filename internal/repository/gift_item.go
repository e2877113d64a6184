package repository

import (
	"context"
	"time"

	"gift-registry-service/internal/model"

	"gorm.io/gorm"
)

type GiftItemRepository interface {
	Create(ctx context.Context, item *model.GiftItem) error
	FindByID(ctx context.Context, itemID string) (*model.GiftItem, error)
	List(ctx context.Context) ([]*model.GiftItem, error)
	IsPaid(ctx context.Context, itemID string) (bool, error)
	MarkPaid(ctx context.Context, itemID string) (bool, error)
}

type giftItemRepoImpl struct {
	db *gorm.DB
}

func NewGiftItemRepository(db *gorm.DB) GiftItemRepository {
	return &giftItemRepoImpl{
		db: db,
	}
}

func (r *giftItemRepoImpl) Create(ctx context.Context, item *model.GiftItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *giftItemRepoImpl) FindByID(ctx context.Context, itemID string) (*model.GiftItem, error) {
	var item model.GiftItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *giftItemRepoImpl) List(ctx context.Context) ([]*model.GiftItem, error) {
	var items []*model.GiftItem
	err := r.db.WithContext(ctx).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *giftItemRepoImpl) IsPaid(ctx context.Context, itemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.GiftItem{}).
		Where("id = ?", itemID).
		Where("paid = ?", true).
		Count(&count).Error

	return count > 0, err
}

// MarkPaid flips the item to paid exactly once. The paid = false predicate is
// the idempotency guard: a duplicate webhook delivery affects zero rows.
func (r *giftItemRepoImpl) MarkPaid(ctx context.Context, itemID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.GiftItem{}).
		Where("id = ? AND paid = ?", itemID, false).
		Updates(map[string]interface{}{
			"paid":           true,
			"payment_status": model.PaymentStatusApproved,
			"updated_at":     time.Now(),
		})

	return result.RowsAffected > 0, result.Error
}
