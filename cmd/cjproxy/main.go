// Package main is the entry point for the CJ dropshipping proxy.
package main

import (
	"os"

	"github.com/tanguy-kabore/cjdropshipping-api/cmd/cjproxy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
