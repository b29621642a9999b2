package main

import (
	"github.com/ormanli/slipscan/internal/infra/cli"
)

func main() {
	cli.Execute()
}
