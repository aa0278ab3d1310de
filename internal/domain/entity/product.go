package entity

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Product representa un producto del estoque.
// ID lo asigna el caso de uso (max + 1); NameKey es el nombre normalizado usado para unicidad.
type Product struct {
	ID         int64
	Nome       string
	NameKey    string
	Quantidade int64
	Preco      decimal.Decimal // precio unitario
}

// NameKey normaliza un nombre para compararlo sin distinguir mayúsculas (case folding Unicode).
// Un cases.Caser no es seguro entre goroutines, por eso se crea uno por llamada.
func NameKey(nome string) string {
	return cases.Fold().String(strings.TrimSpace(nome))
}

// Clone devuelve una copia independiente del producto.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// SeedProducts devuelve el estado inicial del estoque usado por Reset.
func SeedProducts() []*Product {
	return []*Product{
		{ID: 1, Nome: "Produto A", NameKey: NameKey("Produto A"), Quantidade: 10, Preco: decimal.NewFromInt(50)},
		{ID: 2, Nome: "Produto B", NameKey: NameKey("Produto B"), Quantidade: 5, Preco: decimal.NewFromInt(40)},
	}
}
