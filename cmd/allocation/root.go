package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"allocation/pkg/config"
	"allocation/pkg/engine"
	"allocation/pkg/report"
)

type options struct {
	configPath      string
	allocations     string
	employees       string
	baseCost        int
	duplicatePolicy string
	output          string
	breakdown       bool
	logLevel        string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	def := config.Default()
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML config file. Defaults to $XDG_CONFIG_HOME/"+config.RelativePath+" when present.")
	fs.StringVar(&o.allocations, "allocations", def.Allocations, "Path to the role-cost configuration (ROLE|COST per line).")
	fs.StringVar(&o.employees, "employees", def.Employees, "Path to the employee directory (id|last|first|role|department|manager per line).")
	fs.IntVar(&o.baseCost, "base-cost", def.BaseCost, "Allocation charged for the queried manager itself.")
	fs.StringVar(&o.duplicatePolicy, "duplicates", def.DuplicatePolicy, "What to do with repeated employee ids: overwrite, warn or reject.")
	fs.StringVarP(&o.output, "output", "o", def.Output, "Output format: text or json.")
	fs.BoolVar(&o.breakdown, "breakdown", def.Breakdown, "In text output, list every contributing employee and per-role subtotals.")
	fs.StringVar(&o.logLevel, "log-level", def.LogLevel, "Log level written to stderr (error, warning, info, debug).")
}

// apply overlays explicitly set flags on top of the file configuration.
func (o *options) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("allocations") {
		cfg.Allocations = o.allocations
	}
	if fs.Changed("employees") {
		cfg.Employees = o.employees
	}
	if fs.Changed("base-cost") {
		cfg.BaseCost = o.baseCost
	}
	if fs.Changed("duplicates") {
		cfg.DuplicatePolicy = o.duplicatePolicy
	}
	if fs.Changed("output") {
		cfg.Output = o.output
	}
	if fs.Changed("breakdown") {
		cfg.Breakdown = o.breakdown
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
}

func newRootCmd(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "allocation [flags] <employee-id>",
		Short: "Compute the total allocation cost of a manager's reporting chain",
		Long: `allocation sums the role cost of every employee who reports, directly or
through other managers, to the given manager, plus a fixed base cost for the
manager itself. Role costs come from the allocations file and the hierarchy
from the employee directory.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return withCode(exitUsage, fmt.Errorf("expected one employee id, got %d arguments", len(args)))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rawID := ""
			if len(args) == 1 {
				rawID = args[0]
			}
			return run(cmd, fs, opts, rawID, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	opts.addFlags(cmd.Flags())

	return cmd
}

func run(cmd *cobra.Command, fs afero.Fs, opts *options, rawID string, stdout, stderr io.Writer) error {
	cfg, cfgPath, err := config.Load(fs, opts.configPath)
	if err != nil {
		return withCode(exitFailure, err)
	}
	opts.apply(cmd.Flags(), &cfg)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return withCode(exitUsage, fmt.Errorf("invalid settings: %w", err))
	}

	policy, err := engine.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return withCode(exitUsage, err)
	}
	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return withCode(exitUsage, err)
	}

	runID := uuid.New().String()
	log, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return withCode(exitUsage, err)
	}
	entry := log.WithField("run_id", runID)
	if cfgPath != "" {
		entry.WithField("config", cfgPath).Debug("Loaded config file")
	}

	pipeline := engine.NewPipeline(fs)
	pipeline.CostsPath = cfg.Allocations
	pipeline.DirectoryPath = cfg.Employees
	pipeline.DuplicatePolicy = policy
	pipeline.BaseCost = cfg.BaseCost
	pipeline.Log = entry

	res, err := pipeline.Run(rawID)
	if err != nil {
		return err
	}

	return report.Write(stdout, report.Build(runID, res), format, cfg.Breakdown)
}

func newLogger(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}
