package services

import (
	"context"
	"testing"

	"github.com/ivanfarhani22/management-ecommerce-sub000/mocks"
	"github.com/ivanfarhani22/management-ecommerce-sub000/models"
	"github.com/ivanfarhani22/management-ecommerce-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartService_AddMergesExistingLine(t *testing.T) {
	mockCarts := new(mocks.MockCartRepository)
	mockProducts := new(mocks.MockProductRepository)

	product := &models.Product{ID: 7, Name: "Watch", Price: 100000, Stock: 10}
	cart := &models.Cart{CartID: 1, UserID: "user-1"}

	mockProducts.On("FindByID", mock.Anything, uint(7)).Return(product, nil)
	mockCarts.On("GetByUser", mock.Anything, "user-1").Return(cart, nil)

	// First add: no existing line.
	mockCarts.On("FindItem", mock.Anything, uint(1), uint(7)).
		Return(nil, repository.ErrCartItemNotFound).Once()
	mockCarts.On("SaveItem", mock.Anything, mock.AnythingOfType("*models.CartItem")).Return(nil)

	svc := NewCartService(mockCarts, mockProducts)

	first, err := svc.Add(context.Background(), "user-1", 7, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	// Second add of the same product merges into one line: 2 + 3 = 5.
	mockCarts.On("FindItem", mock.Anything, uint(1), uint(7)).
		Return(&models.CartItem{ID: 11, CartID: 1, ProductID: 7, Quantity: 2}, nil).Once()

	second, err := svc.Add(context.Background(), "user-1", 7, 3)
	assert.NoError(t, err)
	assert.Equal(t, 5, second.Quantity)

	mockCarts.AssertExpectations(t)
	mockProducts.AssertExpectations(t)
}

func TestCartService_AddRejectsBadQuantity(t *testing.T) {
	svc := NewCartService(new(mocks.MockCartRepository), new(mocks.MockProductRepository))

	_, err := svc.Add(context.Background(), "user-1", 7, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Add(context.Background(), "user-1", 7, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddMissingProduct(t *testing.T) {
	mockCarts := new(mocks.MockCartRepository)
	mockProducts := new(mocks.MockProductRepository)

	mockProducts.On("FindByID", mock.Anything, uint(99)).Return(nil, repository.ErrProductNotFound)

	svc := NewCartService(mockCarts, mockProducts)
	_, err := svc.Add(context.Background(), "user-1", 99, 1)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	mockCarts.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
}

func TestCartService_SetQuantityZeroDeletesLine(t *testing.T) {
	mockCarts := new(mocks.MockCartRepository)
	mockProducts := new(mocks.MockProductRepository)

	cart := &models.Cart{CartID: 3, UserID: "user-1"}
	mockCarts.On("GetByUser", mock.Anything, "user-1").Return(cart, nil)
	mockCarts.On("DeleteItem", mock.Anything, uint(3), uint(7)).Return(nil)

	svc := NewCartService(mockCarts, mockProducts)
	err := svc.SetQuantity(context.Background(), "user-1", 7, 0)
	assert.NoError(t, err)

	mockCarts.AssertCalled(t, "DeleteItem", mock.Anything, uint(3), uint(7))
	mockCarts.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
}

func TestCartService_TotalUsesLivePrices(t *testing.T) {
	mockCarts := new(mocks.MockCartRepository)
	mockProducts := new(mocks.MockProductRepository)

	// The line snapshot says 90000 but the product now costs 100000; the
	// live price wins.
	cart := &models.Cart{
		CartID: 1,
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: 7, ProductPrice: 90000, Quantity: 2},
			{ProductID: 8, ProductPrice: 50000, Quantity: 1},
		},
	}
	mockCarts.On("GetByUser", mock.Anything, "user-1").Return(cart, nil)
	mockProducts.On("FindByID", mock.Anything, uint(7)).Return(&models.Product{ID: 7, Price: 100000}, nil)
	mockProducts.On("FindByID", mock.Anything, uint(8)).Return(&models.Product{ID: 8, Price: 50000}, nil)

	svc := NewCartService(mockCarts, mockProducts)
	total, err := svc.Total(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, float64(250000), total)
}
