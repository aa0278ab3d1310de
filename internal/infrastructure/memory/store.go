// Package memory implementa el backend de almacenamiento en proceso.
// Un único mutex serializa todas las transacciones; si fn falla se restaura la copia previa.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ inventory.Store = (*Store)(nil)

// Store colecciones canónicas de productos y ventas.
type Store struct {
	mu         sync.Mutex
	products   []*entity.Product
	sales      []*entity.Sale
	lastSaleID int64
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{}
}

// NewSeededStore crea un almacenamiento con los productos semilla.
func NewSeededStore() *Store {
	return &Store{products: entity.SeedProducts()}
}

type snapshot struct {
	products   []*entity.Product
	sales      []*entity.Sale
	lastSaleID int64
}

// Run ejecuta fn con el mutex tomado. Si fn devuelve error, el estado vuelve a como estaba.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot()
	if err := fn(&productRepo{s: s}, &saleRepo{s: s}); err != nil {
		s.products, s.sales, s.lastSaleID = prev.products, prev.sales, prev.lastSaleID
		return err
	}
	return nil
}

// Reset reemplaza los productos por la semilla y vacía el libro de ventas.
func (s *Store) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = entity.SeedProducts()
	s.sales = nil
	s.lastSaleID = 0
	return nil
}

func (s *Store) snapshot() snapshot {
	products := make([]*entity.Product, len(s.products))
	for i, p := range s.products {
		products[i] = p.Clone()
	}
	// Las ventas son inmutables: basta con copiar el slice.
	sales := make([]*entity.Sale, len(s.sales))
	copy(sales, s.sales)
	return snapshot{products: products, sales: sales, lastSaleID: s.lastSaleID}
}

func (s *Store) indexOf(id int64) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// productRepo opera sobre el Store con el mutex ya tomado por Run.
type productRepo struct {
	s *Store
}

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.products = append(r.s.products, product.Clone())
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	if i := r.s.indexOf(id); i >= 0 {
		return r.s.products[i].Clone(), nil
	}
	return nil, nil
}

func (r *productRepo) GetByNameKey(_ context.Context, key string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.NameKey == key {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

// GetForUpdate no necesita bloqueo adicional: Run ya tiene el mutex.
func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) LockForInsert(context.Context) error { return nil }

func (r *productRepo) MaxID(context.Context) (int64, error) {
	var maxID int64
	for _, p := range r.s.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID, nil
}

func (r *productRepo) List(context.Context) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		list = append(list, p.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	if i := r.s.indexOf(product.ID); i >= 0 {
		r.s.products[i] = product.Clone()
	}
	return nil
}

func (r *productRepo) Delete(_ context.Context, id int64) error {
	if i := r.s.indexOf(id); i >= 0 {
		r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
	}
	return nil
}

type saleRepo struct {
	s *Store
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.lastSaleID++
	sale.ID = r.s.lastSaleID
	stored := *sale
	r.s.sales = append(r.s.sales, &stored)
	return nil
}

func (r *saleRepo) List(context.Context) ([]*entity.Sale, error) {
	list := make([]*entity.Sale, 0, len(r.s.sales))
	for _, s := range r.s.sales {
		c := *s
		list = append(list, &c)
	}
	return list, nil
}
