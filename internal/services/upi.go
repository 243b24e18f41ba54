package services

import (
	"context"

	"mtdstore-client/internal/api"
	"mtdstore-client/internal/store"
	"mtdstore-client/internal/utils"
)

// UPIService manages the seller's payment collection identifier.
type UPIService struct {
	client *api.Client
	store  *store.Store
}

// NewUPIService creates the UPI settings service.
func NewUPIService(client *api.Client, st *store.Store) *UPIService {
	return &UPIService{client: client, store: st}
}

// Current fetches the seller's configured UPI ID. Empty means unset.
func (s *UPIService) Current(ctx context.Context) (string, error) {
	identity, ok := s.store.Identity()
	if !ok {
		return "", utils.NewValidationError("session", "please login first")
	}
	return s.client.SellerUPI(ctx, identity.Username)
}

// Update validates and stores a new UPI ID for the seller.
func (s *UPIService) Update(ctx context.Context, upiID string) error {
	if err := utils.ValidateUPIID(upiID); err != nil {
		return err
	}
	identity, ok := s.store.Identity()
	if !ok {
		return utils.NewValidationError("session", "please login first")
	}
	return s.client.UpdateSellerUPI(ctx, identity.Username, upiID)
}
