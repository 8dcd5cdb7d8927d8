// Package pkg provides public libraries that can be imported by other projects.
//
// This package serves as the public API surface of busTicketSeed and contains:
//   - errors: the fatal error taxonomy of a generation run and its exit codes
//
// Example usage:
//
//	import "github.com/chybatronik/busTicketSeed/pkg/errors"
//
//	if err := gen.Run(ctx); err != nil {
//	    os.Exit(errors.ExitCode(err))
//	}
package pkg

// This file serves as the Go package documentation placeholder.
