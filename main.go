package main

import (
	"os"

	"github.com/sadopc/tasklog/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr, cli.Options{}))
}
