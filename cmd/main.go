package main

import (
	"os"

	"github.com/soundprediction/relex/cmd/relex"
)

func main() {
	if err := relex.Execute(); err != nil {
		os.Exit(1)
	}
}
