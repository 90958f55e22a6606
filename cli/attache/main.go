package main

import (
	"os"

	attachecmder "github.com/inletlabs/attache/cmd/attache"
)

func main() {
	cmd := attachecmder.NewAttacheCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
