package service

import (
	"context"
	"fmt"
	"sort"

	"gift-registry-service/internal/dto"
	"gift-registry-service/internal/model"
	"gift-registry-service/internal/repository"

	"github.com/google/uuid"
)

const (
	ActionPay     = "pay"
	ActionPending = "pending"
	ActionPaid    = "paid"
	ActionRetry   = "retry"
)

type GiftService interface {
	Create(ctx context.Context, req *dto.CreateGiftRequest) (*dto.GiftItemInfo, error)
	List(ctx context.Context) ([]*dto.GiftItemInfo, error)
}

type giftServiceImpl struct {
	giftItemRepo repository.GiftItemRepository
	recordRepo   repository.PaymentRecordRepository
}

func NewGiftService(
	giftItemRepo repository.GiftItemRepository,
	recordRepo repository.PaymentRecordRepository,
) GiftService {
	return &giftServiceImpl{
		giftItemRepo: giftItemRepo,
		recordRepo:   recordRepo,
	}
}

func (s *giftServiceImpl) Create(ctx context.Context, req *dto.CreateGiftRequest) (*dto.GiftItemInfo, error) {
	item := &model.GiftItem{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Icon:          req.Icon,
		Price:         req.Price,
		PaymentStatus: model.PaymentStatusPending,
	}

	if err := s.giftItemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("store gift item: %w", err)
	}

	return &dto.GiftItemInfo{
		ID:            item.ID,
		Name:          item.Name,
		Icon:          item.Icon,
		Price:         item.Price,
		Paid:          item.Paid,
		PaymentStatus: item.PaymentStatus,
		Action:        ActionPay,
	}, nil
}

// List returns the catalog with unpaid items first, cheapest first within each
// group, each carrying the action the UI should render.
func (s *giftServiceImpl) List(ctx context.Context) ([]*dto.GiftItemInfo, error) {
	items, err := s.giftItemRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gift items: %w", err)
	}

	latest, err := s.recordRepo.LatestPerGiftItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment records: %w", err)
	}

	infos := make([]*dto.GiftItemInfo, len(items))
	for i, item := range items {
		infos[i] = &dto.GiftItemInfo{
			ID:            item.ID,
			Name:          item.Name,
			Icon:          item.Icon,
			Price:         item.Price,
			Paid:          item.Paid,
			PaymentStatus: item.PaymentStatus,
			Action:        deriveAction(item, latest[item.ID]),
		}
	}

	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Paid != infos[j].Paid {
			return !infos[i].Paid
		}
		return infos[i].Price < infos[j].Price
	})

	return infos, nil
}

func deriveAction(item *model.GiftItem, latest *model.PaymentRecord) string {
	if item.Paid {
		return ActionPaid
	}
	if latest == nil {
		return ActionPay
	}
	switch latest.Status {
	case model.PaymentStatusPending:
		return ActionPending
	case model.PaymentStatusRejected, model.PaymentStatusCancelled:
		return ActionRetry
	}
	return ActionPay
}
