package main

import (
	"context"
	"os"

	"github.com/velvetash/somnia/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Stderr.WriteString("somnia: " + err.Error() + "\n")
		os.Exit(1)
	}
}
