package service

import (
	"context"
	"fmt"

	"gift-registry-service/internal/dto"
	"gift-registry-service/internal/model"
	"gift-registry-service/internal/repository"
)

type RSVPService interface {
	Submit(ctx context.Context, req *dto.RSVPRequest) error
	List(ctx context.Context) ([]*model.RSVP, error)
}

type rsvpServiceImpl struct {
	rsvpRepo repository.RSVPRepository
}

func NewRSVPService(rsvpRepo repository.RSVPRepository) RSVPService {
	return &rsvpServiceImpl{
		rsvpRepo: rsvpRepo,
	}
}

func (s *rsvpServiceImpl) Submit(ctx context.Context, req *dto.RSVPRequest) error {
	partySize := req.PartySize
	if partySize == 0 {
		partySize = 1
	}

	err := s.rsvpRepo.Upsert(ctx, &model.RSVP{
		GuestEmail: req.GuestEmail,
		GuestName:  req.GuestName,
		Attending:  *req.Attending,
		PartySize:  partySize,
		Note:       req.Note,
	})
	if err != nil {
		return fmt.Errorf("store rsvp: %w", err)
	}

	return nil
}

func (s *rsvpServiceImpl) List(ctx context.Context) ([]*model.RSVP, error) {
	return s.rsvpRepo.List(ctx)
}
