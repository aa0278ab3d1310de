package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las búsquedas devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByNameKey(ctx context.Context, key string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueándolo hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// LockForInsert serializa altas concurrentes (cálculo de max+1 y chequeo de nombre).
	LockForInsert(ctx context.Context) error
	MaxID(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}
