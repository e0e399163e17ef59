package main

import (
	"os"

	"github.com/aigforge/aigforge/cmd/aigforge/internal/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
