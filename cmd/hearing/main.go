package main

import (
	"os"

	"github.com/elefant-coder/hearing-chatbot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
