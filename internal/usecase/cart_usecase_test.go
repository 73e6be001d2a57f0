package usecase

import (
	"context"
	"net/http"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newCartFixture() (*CartUsecase, *CartItemRepoMock, *ProductRepoMock) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	return NewCartUsecase(cartRepo, productRepo, zap.NewNop()), cartRepo, productRepo
}

func activeProduct() model.Product {
	return model.Product{
		ID: 101, VendorID: 10, Name: "productX",
		Price: 100, StockQuantity: 5, IsActive: true,
		Vendor: model.Vendor{ID: 10, StoreName: "Store A"},
	}
}

// Test: 新規追加と合計の計算
func TestAddToCartNewItem(t *testing.T) {
	uc, cartRepo, productRepo := newCartFixture()

	productRepo.On("FindByID", mock.Anything, int64(101)).Return(activeProduct(), nil)
	cartRepo.On("FindByUserAndProduct", mock.Anything, "user-1", int64(101)).
		Return(model.CartItem{}, repo.ErrNotFound)
	cartRepo.On("Create", mock.Anything, mock.MatchedBy(func(item model.CartItem) bool {
		return item.UserID == "user-1" && item.ProductID == 101 && item.Quantity == 2
	})).Return(int64(1), nil)
	cartRepo.On("ListByUserID", mock.Anything, "user-1").Return([]model.CartItem{
		{ID: 1, UserID: "user-1", ProductID: 101, Quantity: 2, Product: activeProduct()},
	}, nil)

	out, err := uc.AddToCart(context.Background(), "user-1", AddCartInput{ProductID: 101, Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.TotalItems)
	assert.Equal(t, int64(200), out.SubTotal)
	assert.Equal(t, out.SubTotal+out.ShippingCost, out.TotalAmount)
	assert.False(t, out.HasOutOfStockItems)
	cartRepo.AssertExpectations(t)
}

// Test: 同一商品は数量加算になる
func TestAddToCartAccumulatesQuantity(t *testing.T) {
	uc, cartRepo, productRepo := newCartFixture()

	productRepo.On("FindByID", mock.Anything, int64(101)).Return(activeProduct(), nil)
	cartRepo.On("FindByUserAndProduct", mock.Anything, "user-1", int64(101)).
		Return(model.CartItem{ID: 1, UserID: "user-1", ProductID: 101, Quantity: 2}, nil)
	cartRepo.On("UpdateQuantity", mock.Anything, int64(1), int64(3)).Return(nil)
	cartRepo.On("ListByUserID", mock.Anything, "user-1").Return([]model.CartItem{
		{ID: 1, UserID: "user-1", ProductID: 101, Quantity: 3, Product: activeProduct()},
	}, nil)

	_, err := uc.AddToCart(context.Background(), "user-1", AddCartInput{ProductID: 101, Quantity: 1})

	assert.NoError(t, err)
	cartRepo.AssertExpectations(t)
	cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Test: 合計数量が在庫を超える追加は400
func TestAddToCartStockExceeded(t *testing.T) {
	uc, cartRepo, productRepo := newCartFixture()

	productRepo.On("FindByID", mock.Anything, int64(101)).Return(activeProduct(), nil)
	cartRepo.On("FindByUserAndProduct", mock.Anything, "user-1", int64(101)).
		Return(model.CartItem{ID: 1, UserID: "user-1", ProductID: 101, Quantity: 4}, nil)

	_, err := uc.AddToCart(context.Background(), "user-1", AddCartInput{ProductID: 101, Quantity: 2})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

// Test: 非公開になった商品は追加できない
func TestAddToCartInactiveProduct(t *testing.T) {
	uc, cartRepo, productRepo := newCartFixture()

	p := activeProduct()
	p.IsActive = false
	productRepo.On("FindByID", mock.Anything, int64(101)).Return(p, nil)

	_, err := uc.AddToCart(context.Background(), "user-1", AddCartInput{ProductID: 101, Quantity: 1})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Test: 他人のカート明細は存在しない扱い
func TestUpdateCartItemOtherUser(t *testing.T) {
	uc, cartRepo, _ := newCartFixture()

	cartRepo.On("FindByID", mock.Anything, int64(1)).Return(model.CartItem{
		ID: 1, UserID: "user-1", ProductID: 101, Quantity: 2, Product: activeProduct(),
	}, nil)

	_, err := uc.UpdateCartItem(context.Background(), "user-2", 1, UpdateCartItemInput{Quantity: 3})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

// Test: 在庫切れ明細はフラグが立ち、割引価格が小計に反映される
func TestGetCartFlagsOutOfStock(t *testing.T) {
	uc, cartRepo, _ := newCartFixture()

	discount := int64(80)
	discounted := activeProduct()
	discounted.DiscountPrice = &discount

	outOfStock := model.Product{
		ID: 201, VendorID: 20, Name: "productY",
		Price: 50, StockQuantity: 0, IsActive: true,
		Vendor: model.Vendor{ID: 20, StoreName: "Store B"},
	}

	cartRepo.On("ListByUserID", mock.Anything, "user-1").Return([]model.CartItem{
		{ID: 1, UserID: "user-1", ProductID: 101, Quantity: 2, Product: discounted},
		{ID: 2, UserID: "user-1", ProductID: 201, Quantity: 1, Product: outOfStock},
	}, nil)

	out, err := uc.GetCart(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.True(t, out.HasOutOfStockItems)
	assert.True(t, out.Items[0].InStock)
	assert.False(t, out.Items[1].InStock)
	assert.Equal(t, int64(80), out.Items[0].UnitPrice)
	assert.Equal(t, int64(160+50), out.SubTotal)
}

// Test: 空カートは空のまま返る（送料も0）
func TestGetCartEmpty(t *testing.T) {
	uc, cartRepo, _ := newCartFixture()

	cartRepo.On("ListByUserID", mock.Anything, "user-1").Return([]model.CartItem{}, nil)

	out, err := uc.GetCart(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.ShippingCost)
	assert.Equal(t, int64(0), out.TotalAmount)
}

// Test: 削除は本人のみ
func TestRemoveFromCart(t *testing.T) {
	uc, cartRepo, _ := newCartFixture()

	cartRepo.On("FindByID", mock.Anything, int64(1)).Return(model.CartItem{
		ID: 1, UserID: "user-1", ProductID: 101, Quantity: 2, Product: activeProduct(),
	}, nil)
	cartRepo.On("DeleteByID", mock.Anything, int64(1)).Return(nil)
	cartRepo.On("ListByUserID", mock.Anything, "user-1").Return([]model.CartItem{}, nil)

	out, err := uc.RemoveFromCart(context.Background(), "user-1", 1)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	cartRepo.AssertExpectations(t)
}

func TestClearCart(t *testing.T) {
	uc, cartRepo, _ := newCartFixture()

	cartRepo.On("DeleteByUserID", mock.Anything, "user-1").Return(nil)

	assert.NoError(t, uc.ClearCart(context.Background(), "user-1"))
	cartRepo.AssertExpectations(t)
}
