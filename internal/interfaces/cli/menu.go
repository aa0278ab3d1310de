// Package cli implementa el menú interactivo de consola sobre el servicio de estoque.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// Inventory operaciones del servicio que usa el menú.
type Inventory interface {
	Register(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	GetByName(ctx context.Context, nome string) (*dto.ProductResponse, error)
	SellByName(ctx context.Context, nome string, quantidade int64) (*dto.SellResult, error)
}

const (
	msgInvalidOption = "Opção inválida! Por favor, tente novamente."
	msgEmpty         = "O estoque está vazio."
	msgNotFound      = "Produto não encontrado no sistema."
	msgInsufficient  = "Quantidade insuficiente no estoque."
	msgInvalidNumber = "Valor inválido."
	msgExit          = "Saindo do sistema."
)

// Menu lee opciones de in y escribe en out hasta "5" o EOF.
type Menu struct {
	inv Inventory
	in  *bufio.Scanner
	out io.Writer
}

// NewMenu construye el menú.
func NewMenu(inv Inventory, in io.Reader, out io.Writer) *Menu {
	return &Menu{inv: inv, in: bufio.NewScanner(in), out: out}
}

// Run ejecuta el bucle del menú. EOF en la entrada termina sin error.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.println("\nSistema de Gerenciamento de Estoque")
		m.println("1. Cadastrar Produto")
		m.println("2. Listar Produtos")
		m.println("3. Consultar Produto")
		m.println("4. Vender Produto")
		m.println("5. Sair")

		opcao, ok := m.prompt("Escolha uma opção: ")
		if !ok {
			return m.in.Err()
		}
		var err error
		switch opcao {
		case "1":
			err = m.cadastrar(ctx)
		case "2":
			err = m.listar(ctx)
		case "3":
			err = m.consultar(ctx)
		case "4":
			err = m.vender(ctx)
		case "5":
			m.println(msgExit)
			return nil
		default:
			m.println(msgInvalidOption)
		}
		if errors.Is(err, io.EOF) {
			return m.in.Err()
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) cadastrar(ctx context.Context) error {
	nome, ok := m.prompt("Digite o nome do produto: ")
	if !ok {
		return io.EOF
	}
	qtd, ok := m.prompt("Digite a quantidade do produto: ")
	if !ok {
		return io.EOF
	}
	preco, ok := m.prompt("Digite o preço do produto: ")
	if !ok {
		return io.EOF
	}
	q, err := strconv.ParseInt(qtd, 10, 64)
	if err != nil {
		m.println(msgInvalidNumber)
		return nil
	}
	p, err := decimal.NewFromString(strings.Replace(preco, ",", ".", 1))
	if err != nil {
		m.println(msgInvalidNumber)
		return nil
	}
	if _, err := m.inv.Register(ctx, dto.CreateProductRequest{Nome: nome, Quantidade: q, Preco: p}); err != nil {
		return m.report(err)
	}
	m.println("Produto cadastrado com sucesso!")
	return nil
}

func (m *Menu) listar(ctx context.Context) error {
	produtos, err := m.inv.List(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		m.println(msgEmpty)
		return nil
	}
	if err != nil {
		return m.report(err)
	}
	m.println("Produtos em estoque:")
	for _, p := range produtos {
		m.println(formatProduct(p))
	}
	return nil
}

func (m *Menu) consultar(ctx context.Context) error {
	nome, ok := m.prompt("Digite o nome do produto que deseja consultar: ")
	if !ok {
		return io.EOF
	}
	p, err := m.inv.GetByName(ctx, nome)
	if err != nil {
		return m.report(err)
	}
	m.println(formatProduct(*p))
	return nil
}

func (m *Menu) vender(ctx context.Context) error {
	nome, ok := m.prompt("Digite o nome do produto vendido: ")
	if !ok {
		return io.EOF
	}
	qtd, ok := m.prompt("Digite a quantidade vendida: ")
	if !ok {
		return io.EOF
	}
	q, err := strconv.ParseInt(qtd, 10, 64)
	if err != nil {
		m.println(msgInvalidNumber)
		return nil
	}
	res, err := m.inv.SellByName(ctx, nome, q)
	if err != nil {
		return m.report(err)
	}
	m.println(fmt.Sprintf("%d unidade(s) de %s vendida(s) com sucesso!", q, res.Produto.Nome))
	return nil
}

// report escribe el mensaje de un error de dominio; los errores de infraestructura cortan el menú.
func (m *Menu) report(err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		m.println(fmt.Sprintf("Dados inválidos (%s): %s.", verr.Field, verr.Message))
	case errors.Is(err, domain.ErrConflict):
		m.println("Produto já existe.")
	case errors.Is(err, domain.ErrNotFound):
		m.println(msgNotFound)
	case errors.Is(err, domain.ErrInsufficientStock):
		m.println(msgInsufficient)
	default:
		return err
	}
	return nil
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func formatProduct(p dto.ProductResponse) string {
	return fmt.Sprintf("Nome: %s, Quantidade: %d, Preço: R$%s", p.Nome, p.Quantidade, p.Preco.StringFixed(2))
}
