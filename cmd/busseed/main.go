// Package main provides the entry point for the busseed data generator.
package main

import (
	"fmt"
	"os"

	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

var (
	// Build information (set during build)
	Version   = "dev"
	BuildTime = ""
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "busseed: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
