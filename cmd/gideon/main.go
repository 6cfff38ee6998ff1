package main

import (
	"context"

	"github.com/faizmokh/gideon/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
