package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductUseCase núcleo del estoque: alta, consulta, venta, actualización, baja y reinicio.
// No guarda estado entre llamadas; todo pasa por el Store en una transacción.
type ProductUseCase struct {
	store Store
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store Store) *ProductUseCase {
	return &ProductUseCase{store: store, now: time.Now}
}

// Register crea un producto. El ID es max(IDs existentes)+1, o 1 si el estoque está vacío.
func (uc *ProductUseCase) Register(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	if err := validateNome(nome); err != nil {
		return nil, err
	}
	if err := validateQuantidade(in.Quantidade); err != nil {
		return nil, err
	}
	if err := validatePreco(in.Preco); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Nome:       nome,
		NameKey:    entity.NameKey(nome),
		Quantidade: in.Quantidade,
		Preco:      in.Preco,
	}

	err := uc.store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		if err := productRepo.LockForInsert(ctx); err != nil {
			return err
		}
		existing, err := productRepo.GetByNameKey(ctx, product.NameKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}
		maxID, err := productRepo.MaxID(ctx)
		if err != nil {
			return err
		}
		product.ID = maxID + 1
		return productRepo.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve todos los productos ordenados por ID. Estoque vacío es ErrNotFound (contrato de la API).
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	var list []*entity.Product
	err := uc.store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		var err error
		list, err = productRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		var err error
		product, err = productRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByName busca un producto por nombre sin distinguir mayúsculas.
func (uc *ProductUseCase) GetByName(ctx context.Context, nome string) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		var err error
		product, err = productRepo.GetByNameKey(ctx, entity.NameKey(nome))
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Sell descuenta quantidade del stock y registra la venta en la misma transacción.
// Con stock insuficiente no se modifica nada.
func (uc *ProductUseCase) Sell(ctx context.Context, id int64, quantidade int64) (*dto.SellResult, error) {
	if quantidade <= 0 {
		return nil, domain.Invalid("quantidade", "deve ser maior que zero")
	}
	var result *dto.SellResult
	err := uc.store.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		result, err = uc.sell(ctx, productRepo, saleRepo, product, quantidade)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SellByName igual que Sell pero resolviendo el producto por nombre (menú de consola).
func (uc *ProductUseCase) SellByName(ctx context.Context, nome string, quantidade int64) (*dto.SellResult, error) {
	if quantidade <= 0 {
		return nil, domain.Invalid("quantidade", "deve ser maior que zero")
	}
	var result *dto.SellResult
	err := uc.store.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		found, err := productRepo.GetByNameKey(ctx, entity.NameKey(nome))
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(ctx, found.ID)
		if err != nil {
			return err
		}
		result, err = uc.sell(ctx, productRepo, saleRepo, product, quantidade)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// sell aplica la venta sobre un producto ya bloqueado dentro de la transacción del caller.
func (uc *ProductUseCase) sell(
	ctx context.Context,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	product *entity.Product,
	quantidade int64,
) (*dto.SellResult, error) {
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Quantidade < quantidade {
		return nil, domain.ErrInsufficientStock
	}
	product.Quantidade -= quantidade
	if err := productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	sale := &entity.Sale{
		ProdutoID:         product.ID,
		QuantidadeVendida: quantidade,
		ValorVenda:        product.Preco.Mul(decimal.NewFromInt(quantidade)),
		DataVenda:         uc.now().UTC(),
	}
	if err := saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return &dto.SellResult{
		Produto: *toProductResponse(product),
		Venda:   *toSaleResponse(sale),
	}, nil
}

// Update aplica solo los campos presentes. Un cambio de nombre vuelve a validar la unicidad.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var nome string
	if in.Nome != nil {
		nome = strings.TrimSpace(*in.Nome)
		if err := validateNome(nome); err != nil {
			return nil, err
		}
	}
	if in.Quantidade != nil {
		if err := validateQuantidade(*in.Quantidade); err != nil {
			return nil, err
		}
	}
	if in.Preco != nil {
		if err := validatePreco(*in.Preco); err != nil {
			return nil, err
		}
	}

	var product *entity.Product
	err := uc.store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		if in.Nome != nil {
			if err := productRepo.LockForInsert(ctx); err != nil {
				return err
			}
		}
		var err error
		product, err = productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Nome != nil {
			key := entity.NameKey(nome)
			if key != product.NameKey {
				other, err := productRepo.GetByNameKey(ctx, key)
				if err != nil {
					return err
				}
				if other != nil && other.ID != product.ID {
					return domain.ErrConflict
				}
			}
			product.Nome = nome
			product.NameKey = key
		}
		if in.Quantidade != nil {
			product.Quantidade = *in.Quantidade
		}
		if in.Preco != nil {
			product.Preco = *in.Preco
		}
		return productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID. Las ventas que lo referencian se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.store.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		return productRepo.Delete(ctx, id)
	})
}

// Reset devuelve el estoque al estado semilla (dos productos, sin ventas).
func (uc *ProductUseCase) Reset(ctx context.Context) error {
	return uc.store.Reset(ctx)
}

func validateNome(nome string) error {
	if nome == "" {
		return domain.Invalid("nome", "é obrigatório")
	}
	return nil
}

func validateQuantidade(q int64) error {
	if q < 0 {
		return domain.Invalid("quantidade", "não pode ser negativa")
	}
	return nil
}

func validatePreco(p decimal.Decimal) error {
	if p.IsNegative() {
		return domain.Invalid("preco", "não pode ser negativo")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		Nome:       p.Nome,
		Quantidade: p.Quantidade,
		Preco:      p.Preco,
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:                s.ID,
		ProdutoID:         s.ProdutoID,
		QuantidadeVendida: s.QuantidadeVendida,
		ValorVenda:        s.ValorVenda,
		DataVenda:         s.DataVenda,
	}
}
