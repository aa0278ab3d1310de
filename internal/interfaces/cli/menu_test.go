package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

func run(t *testing.T, store inventory.Store, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := NewMenu(inventory.NewProductUseCase(store), strings.NewReader(input), &out).Run(context.Background())
	return out.String(), err
}

func TestMenu_FullSession(t *testing.T) {
	input := strings.Join([]string{
		"2",
		"1", "Caneta", "10", "2,5",
		"2",
		"3", "CANETA",
		"4", "caneta", "3",
		"3", "Caneta",
		"4", "Caneta", "100",
		"5",
	}, "\n") + "\n"

	out, err := run(t, memory.NewStore(), input)
	require.NoError(t, err)

	assert.Contains(t, out, "O estoque está vazio.")
	assert.Contains(t, out, "Produto cadastrado com sucesso!")
	assert.Contains(t, out, "Produtos em estoque:")
	assert.Contains(t, out, "Nome: Caneta, Quantidade: 10, Preço: R$2.50")
	assert.Contains(t, out, "3 unidade(s) de Caneta vendida(s) com sucesso!")
	assert.Contains(t, out, "Nome: Caneta, Quantidade: 7, Preço: R$2.50")
	assert.Contains(t, out, "Quantidade insuficiente no estoque.")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Saindo do sistema."))
}

func TestMenu_InvalidOptionReprompts(t *testing.T) {
	out, err := run(t, memory.NewStore(), "9\nabc\n5\n")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Opção inválida! Por favor, tente novamente."))
	assert.Equal(t, 3, strings.Count(out, "Escolha uma opção: "))
}

func TestMenu_EOFExits(t *testing.T) {
	out, err := run(t, memory.NewStore(), "2\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "Saindo do sistema.")

	_, err = run(t, memory.NewStore(), "1\nCaneta\n")
	require.NoError(t, err)
}

func TestMenu_DomainErrors(t *testing.T) {
	input := strings.Join([]string{
		"3", "Inexistente",
		"4", "Inexistente", "1",
		"1", "Produto A", "1", "1",
		"1", "X", "-1", "1",
		"1", "X", "dez", "1",
		"4", "Produto A", "0",
		"5",
	}, "\n") + "\n"

	out, err := run(t, memory.NewSeededStore(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Produto não encontrado no sistema."))
	assert.Contains(t, out, "Produto já existe.")
	assert.Contains(t, out, "Dados inválidos (quantidade)")
	assert.Contains(t, out, "Valor inválido.")
}

type downStore struct{}

func (downStore) Run(context.Context, func(repository.ProductRepository, repository.SaleRepository) error) error {
	return domain.ErrBackendUnavailable
}

func (downStore) Reset(context.Context) error { return domain.ErrBackendUnavailable }

func TestMenu_BackendErrorStops(t *testing.T) {
	_, err := run(t, downStore{}, "2\n5\n")
	assert.True(t, errors.Is(err, domain.ErrBackendUnavailable))
}
