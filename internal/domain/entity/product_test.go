package entity_test

import (
	"testing"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestNameKey(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"mayúsculas", "Widget", "WIDGET"},
		{"espacios", "  Widget ", "widget"},
		{"acentos", "Ação", "AÇÃO"},
		{"eszett", "Straße", "STRASSE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, entity.NameKey(tt.a), entity.NameKey(tt.b))
		})
	}
	assert.NotEqual(t, entity.NameKey("Widget"), entity.NameKey("Gadget"))
}

func TestClone(t *testing.T) {
	p := &entity.Product{ID: 1, Nome: "A", Quantidade: 3}
	c := p.Clone()
	c.Quantidade = 0

	assert.Equal(t, int64(3), p.Quantidade)
	assert.Nil(t, (*entity.Product)(nil).Clone())
}

func TestSeedProducts(t *testing.T) {
	seed := entity.SeedProducts()

	assert.Len(t, seed, 2)
	assert.Equal(t, "produto a", seed[0].NameKey)
	assert.Equal(t, "50", seed[0].Preco.String())
	assert.Equal(t, "40", seed[1].Preco.String())

	// cada llamada devuelve instancias nuevas
	seed[0].Quantidade = 0
	assert.Equal(t, int64(10), entity.SeedProducts()[0].Quantidade)
}
