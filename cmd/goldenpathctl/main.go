package main

import (
	"context"
	"os"

	"github.com/performance-portal/goldenpath/pkg/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args))
}
