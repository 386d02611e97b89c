package main

import (
	"fmt"
	"os"

	"github.com/paperbot/paperbot/internal/cli"
	_ "modernc.org/sqlite"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
