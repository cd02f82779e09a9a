package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un nuevo producto con stock 0. ErrConflict si el código ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	minStock, maxStock := entity.DefaultMinStock, entity.DefaultMaxStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}
	if in.MaxStock != nil {
		maxStock = *in.MaxStock
	}
	if minStock < 0 || maxStock < 0 {
		return nil, fmt.Errorf("%w: los umbrales no pueden ser negativos", domain.ErrInvalidInput)
	}
	price := decimal.Zero
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
		}
		price = *in.UnitPrice
	}

	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	product := &entity.Product{
		Code:      code,
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		Unit:      strings.TrimSpace(in.Unit),
		MinStock:  minStock,
		MaxStock:  maxStock,
		UnitPrice: price,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewProductResponse(product), nil
}

// List lista todos los productos, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Search busca por código, nombre o categoría (sin distinguir mayúsculas).
func (uc *ProductUseCase) Search(ctx context.Context, keyword string) (*dto.ProductListResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: palabra clave vacía", domain.ErrInvalidInput)
	}
	list, err := uc.repo.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Update aplica una actualización parcial. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.IsEmpty() {
		return nil, fmt.Errorf("%w: no hay campos para actualizar", domain.ErrInvalidInput)
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: código vacío", domain.ErrInvalidInput)
		}
		if code != product.Code {
			other, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		product.Code = code
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: min_stock negativo", domain.ErrInvalidInput)
		}
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		if *in.MaxStock < 0 {
			return nil, fmt.Errorf("%w: max_stock negativo", domain.ErrInvalidInput)
		}
		product.MaxStock = *in.MaxStock
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	// Releer: el stock pudo cambiar entre la lectura y el update.
	fresh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewProductResponse(fresh), nil
}

// Delete elimina el producto con sus movimientos y alertas.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toProductList(list []*entity.Product) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}
}
