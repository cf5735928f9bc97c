package main

import (
	"context"
	"fmt"
	"os"

	"cabinet/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "cabinetctl: %v\n", err)
		os.Exit(1)
	}
}
