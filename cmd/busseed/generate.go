package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chybatronik/busTicketSeed/internal/config"
	"github.com/chybatronik/busTicketSeed/internal/generator"
	"github.com/chybatronik/busTicketSeed/internal/logging"
	"github.com/chybatronik/busTicketSeed/internal/types"
	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

const (
	stdoutPath = "-"
	scriptMode = 0o644
)

type generateFlags struct {
	output           string
	seed             int64
	dialect          string
	envFiles         []string
	quoteIdentifiers bool
	logLevel         string
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the SQL population script",
		Long: `Generates every table in dependency order and writes one INSERT per row.
Settings come from the environment (and .env); flags override them. The script is
written to a temporary file and renamed into place only when generation succeeds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file, - for stdout (or OUTPUT_FILE env)")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "Random seed, 0 for time based (or RANDOM_SEED env)")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "SQL dialect: oracle or postgres (or SQL_DIALECT env)")
	cmd.Flags().StringSliceVar(&flags.envFiles, "env-file", nil, "Env files to load (default .env)")
	cmd.Flags().BoolVar(&flags.quoteIdentifiers, "quote-identifiers", false, "Quote table and column names (or SQL_QUOTE_IDENTIFIERS env)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (or LOG_LEVEL env)")

	return cmd
}

func runGenerate(cmd *cobra.Command, flags generateFlags) error {
	cfg, err := config.Load(flags.envFiles...)
	if err != nil {
		return errors.NewConfigError(err.Error())
	}

	f := cmd.Flags()
	if f.Changed("output") {
		cfg.Output.Path = flags.output
	}
	if f.Changed("seed") {
		cfg.Generation.Seed = flags.seed
	}
	if f.Changed("dialect") {
		cfg.Output.Dialect = strings.ToLower(flags.dialect)
	}
	if f.Changed("quote-identifiers") {
		cfg.Output.QuoteIdentifiers = flags.quoteIdentifiers
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return errors.NewConfigError(err.Error())
	}

	logger := logging.NewLoggerWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format, "busseed", Version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var report *types.Report
	write := func(w io.Writer) error {
		g, err := generator.New(cfg, w, logger)
		if err != nil {
			return err
		}
		report, err = g.Run(ctx)
		return err
	}

	if cfg.Output.Path == stdoutPath {
		err = write(cmd.OutOrStdout())
	} else {
		err = writeAtomically(cfg.Output.Path, write)
	}
	if err != nil {
		logger.WithError(err).Error("Generation failed")
		return err
	}

	logReport(logger, report)
	return nil
}

// writeAtomically writes to a temporary file next to path and renames it into
// place once write succeeds, so a failed run never leaves a partial script
func writeAtomically(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.NewOutputError(err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	// CreateTemp opens with 0600; the script is meant to be shared like any other file
	if err := tmp.Chmod(scriptMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewOutputError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewOutputError(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewOutputError(fmt.Errorf("rename %s: %w", path, err))
	}
	return nil
}

func logReport(logger *logging.Logger, report *types.Report) {
	fields := logging.NewStandardField()
	for _, stat := range report.Tables {
		logger.Debug("Table written", fields.Table(stat.Table), fields.Requested(stat.Requested), fields.Produced(stat.Produced))
	}
	logger.Info("Script written",
		logging.FieldOutput, report.Output,
		logging.FieldSeed, report.Seed,
		"total_rows", report.TotalRows,
		"warnings", len(report.Warnings),
	)
}
