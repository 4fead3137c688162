package services

import (
	"context"
	"time"

	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
)

// CartService manages the per-user staging area for prospective order
// lines. No stock check happens here; stock is only enforced at checkout.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts.GetByUser(ctx, userID)
}

// Add puts qty units of a product in the cart. Re-adding a product merges
// into the existing line by incrementing its quantity.
func (s *CartService) Add(ctx context.Context, userID string, productID uint, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.carts.FindItem(ctx, cart.CartID, productID)
	switch err {
	case nil:
		item.Quantity += qty
		item.AddedAt = time.Now()
	case repository.ErrCartItemNotFound:
		item = &models.CartItem{
			CartID:       cart.CartID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			ProductPrice: product.Price,
			Quantity:     qty,
			AddedAt:      time.Now(),
		}
	default:
		return nil, err
	}

	if err := s.carts.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity replaces a line's quantity; qty <= 0 removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID string, productID uint, qty int) error {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return s.carts.DeleteItem(ctx, cart.CartID, productID)
	}

	item, err := s.carts.FindItem(ctx, cart.CartID, productID)
	if err != nil {
		return err
	}
	item.Quantity = qty
	item.AddedAt = time.Now()
	return s.carts.SaveItem(ctx, item)
}

func (s *CartService) Remove(ctx context.Context, userID string, productID uint) error {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.carts.DeleteItem(ctx, cart.CartID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.carts.ClearItems(ctx, cart.CartID)
}

// Total sums the cart against live product prices, not the snapshots the
// lines carry.
func (s *CartService) Total(ctx context.Context, userID string) (float64, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, item := range cart.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return 0, err
		}
		total += product.Price * float64(item.Quantity)
	}
	return total, nil
}
