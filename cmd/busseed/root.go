package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "busseed [command]",
		Short: "Generate referentially consistent sample data for the bus ticketing schema",
		Long: `Synthesizes companies, fleets, schedules, members, bookings, tickets, refunds and
extensions in foreign-key order and writes them as SQL INSERT statements.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the busseed version",
		Run: func(cmd *cobra.Command, args []string) {
			if BuildTime != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "busseed %s (built %s)\n", Version, BuildTime)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "busseed %s\n", Version)
		},
	}
}
