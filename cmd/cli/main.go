package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/interfaces/cli"
)

// El menú de consola trabaja sobre un estoque en memoria que empieza vacío.
func main() {
	uc := inventory.NewProductUseCase(memory.NewStore())
	if err := cli.NewMenu(uc, os.Stdin, os.Stdout).Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}
