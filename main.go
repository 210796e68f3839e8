package main

import (
	"os"

	"github.com/yma-ai/yma/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
