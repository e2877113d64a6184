package repository

import (
	"context"

	"gift-registry-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RSVPRepository interface {
	Upsert(ctx context.Context, rsvp *model.RSVP) error
	List(ctx context.Context) ([]*model.RSVP, error)
}

type rsvpRepoImpl struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) RSVPRepository {
	return &rsvpRepoImpl{
		db: db,
	}
}

// Upsert keys on guest email so a guest can revise their answer.
func (r *rsvpRepoImpl) Upsert(ctx context.Context, rsvp *model.RSVP) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guest_email"}},
		DoUpdates: clause.AssignmentColumns([]string{"guest_name", "attending", "party_size", "note", "updated_at"}),
	}).Create(rsvp).Error
}

func (r *rsvpRepoImpl) List(ctx context.Context) ([]*model.RSVP, error) {
	var rsvps []*model.RSVP
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&rsvps).Error

	if err != nil {
		return nil, err
	}

	return rsvps, nil
}
