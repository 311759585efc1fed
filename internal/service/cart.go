package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dentalmart/shop/internal/models"
	"github.com/dentalmart/shop/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

type AddItemInput struct {
	Ref      models.ItemRef
	Quantity uint
	Color    string
	Size     string
	Material string
	Note     string
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.GetCartWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return cart, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID uint, in AddItemInput) (*models.CartItem, error) {
	if in.Ref.IsZero() {
		return nil, fmt.Errorf("product or package reference required: %w", ErrValidation)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	productID, packageID := in.Ref.Columns()
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		PackageID: packageID,
		Quantity:  in.Quantity,
		Color:     in.Color,
		Size:      in.Size,
		Material:  in.Material,
		Note:      in.Note,
	}
	if err := s.Repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	cart, err := s.Repo.GetCartWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}

	item, err := s.Repo.UpdateItemQuantity(ctx, cart.ID, itemID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	cart, err := s.Repo.GetCartWithItems(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}

	err = s.Repo.RemoveItem(ctx, cart.ID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}
	return err
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.Repo.GetCartWithItems(ctx, userID)
	if err != nil || cart == nil {
		return err
	}
	return s.Repo.ClearCart(ctx, cart.ID)
}
