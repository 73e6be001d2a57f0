package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"go.uber.org/zap"
)

// CartUsecase は /cart の業務ロジック。
// ここは読み書きとも単発なのでTxManagerは使わない。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	log          *zap.Logger
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	log *zap.Logger,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		log:          log,
	}
}

type CartItemResponse struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	VendorID   int64  `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int64  `json:"quantity"`
	TotalPrice int64  `json:"total_price"`
	InStock    bool   `json:"in_stock"`
}

type CartResponse struct {
	Items              []CartItemResponse `json:"items"`
	TotalItems         int64              `json:"total_items"`
	SubTotal           int64              `json:"sub_total"`
	ShippingCost       int64              `json:"shipping_cost"`
	TotalAmount        int64              `json:"total_amount"`
	HasOutOfStockItems bool               `json:"has_out_of_stock_items"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得。空でも正常（空のまま返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lines, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, storeError(u.log, err)
	}

	return buildCartResponse(lines), nil
}

// AddToCart はカートに追加（同一商品は数量加算）。
// 合計数量が現在庫を超える追加は拒否する。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddCartInput) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, storeError(u.log, err)
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product no longer available")
	}

	existing, err := u.cartItemRepo.FindByUserAndProduct(ctx, userID, in.ProductID)
	switch {
	case err == nil:
		newQty := existing.Quantity + in.Quantity
		if newQty > p.StockQuantity {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
		}
		if err := u.cartItemRepo.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
			return CartResponse{}, storeError(u.log, err)
		}
	case errors.Is(err, repo.ErrNotFound):
		if in.Quantity > p.StockQuantity {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
		}
		_, err := u.cartItemRepo.Create(ctx, model.CartItem{
			UserID:    userID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			AddedAt:   time.Now().UTC(),
		})
		if err != nil {
			return CartResponse{}, storeError(u.log, err)
		}
	default:
		return CartResponse{}, storeError(u.log, err)
	}

	return u.GetCart(ctx, userID)
}

// UpdateCartItem は数量変更。他人の明細は存在しない扱い。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID string, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return CartResponse{}, storeError(u.log, err)
	}
	if item.UserID != userID {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}

	if in.Quantity > item.Product.StockQuantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		return CartResponse{}, storeError(u.log, err)
	}

	return u.GetCart(ctx, userID)
}

func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID string, cartItemID int64) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return CartResponse{}, storeError(u.log, err)
	}
	if item.UserID != userID {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		return CartResponse{}, storeError(u.log, err)
	}

	return u.GetCart(ctx, userID)
}

func (u *CartUsecase) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.cartItemRepo.DeleteByUserID(ctx, userID); err != nil {
		return storeError(u.log, err)
	}
	return nil
}

func buildCartResponse(lines []model.CartItem) CartResponse {
	items := make([]CartItemResponse, 0, len(lines))
	var totalItems int64
	var subTotal int64
	hasOutOfStock := false

	for _, line := range lines {
		unit := line.Product.EffectivePrice()
		inStock := line.Product.StockQuantity >= line.Quantity
		if !inStock {
			hasOutOfStock = true
		}
		items = append(items, CartItemResponse{
			ID:         line.ID,
			ProductID:  line.ProductID,
			Name:       line.Product.Name,
			VendorID:   line.Product.VendorID,
			VendorName: line.Product.Vendor.StoreName,
			UnitPrice:  unit,
			Quantity:   line.Quantity,
			TotalPrice: unit * line.Quantity,
			InStock:    inStock,
		})
		totalItems += line.Quantity
		subTotal += unit * line.Quantity
	}

	// 配送先確定前なので送料は概算の固定値
	var shipping int64
	if len(items) > 0 {
		shipping = cartPreviewShippingFee
	}

	return CartResponse{
		Items:              items,
		TotalItems:         totalItems,
		SubTotal:           subTotal,
		ShippingCost:       shipping,
		TotalAmount:        subTotal + shipping,
		HasOutOfStockItems: hasOutOfStock,
	}
}
