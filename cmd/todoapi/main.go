// Command todoapi serves the todo API: account registration, bearer-token
// login, per-user todos and a public books catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/todoapi/internal/app"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "todoapi: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.Load()
	if err != nil {
		return err
	}

	a, _, err := app.New(cfg)
	if err != nil {
		return err
	}
	return a.Run(context.Background())
}
