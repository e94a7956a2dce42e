package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MrSnakeDoc/showcase/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ showcase: %v\n", err)
		os.Exit(1)
	}
}
