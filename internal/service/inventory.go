package service

import (
	"context"
	"fmt"

	"github.com/agrolink/distribution-api/internal/domain"
)

type InventoryService struct {
	repo     InventoryRepository
	userRepo UserRepository
}

func NewInventoryService(repo InventoryRepository, userRepo UserRepository) *InventoryService {
	return &InventoryService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *InventoryService) GetInventory(ctx context.Context, userID uint) ([]domain.InventoryItem, error) {
	items, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return items, nil
}

// GetUplineInventory returns the stock held by the user's direct upline, so a
// buyer can see what is actually available to them. Users without an upline
// get an empty list.
func (s *InventoryService) GetUplineInventory(ctx context.Context, user domain.User) ([]domain.InventoryItem, error) {
	if user.UplineID == nil {
		return []domain.InventoryItem{}, nil
	}

	items, err := s.repo.FindByUser(ctx, *user.UplineID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return items, nil
}

// AddStock seeds or tops up a user's inventory outside the sale path. Only
// Admin provisions stock this way.
func (s *InventoryService) AddStock(ctx context.Context, userID, productID uint, quantity int) (domain.InventoryRecord, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return domain.InventoryRecord{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	record, err := s.repo.AddStock(ctx, userID, productID, quantity)
	if err != nil {
		return domain.InventoryRecord{}, fmt.Errorf("s.repo.AddStock -> %w", err)
	}

	return record, nil
}
