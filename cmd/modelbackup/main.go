package main

import (
	"os"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
