package main

import (
	"os"

	"github.com/medanat/reviewboard/cmd/webhookctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
