package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/config"
	"github.com/spacemeshos/go-bloomsync/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// flagValues holds the values of the flags that override the config file.
type flagValues struct {
	configPath        string
	dataDir           string
	logLevel          string
	logEncoder        string
	metricsPort       int
	metricsPush       string
	metricsPushPeriod time.Duration
	spaces            []string
	passTimeout       time.Duration
}

// app is the state shared by the subcommands, set up before any of them runs.
type app struct {
	fs     afero.Fs
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	var fv flagValues
	a := &app{
		fs:     afero.NewOsFs(),
		cfg:    config.DefaultConfig(),
		logger: zap.NewNop(),
	}
	cmd := &cobra.Command{
		Use:          "bloomsync",
		Short:        "reconcile the local agents of a node and build bloom digests",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if fv.configPath != "" {
				if err := config.LoadConfig(a.fs, fv.configPath, &a.cfg); err != nil {
					return err
				}
			}
			if err := applyFlags(cmd.Flags(), &fv, &a.cfg); err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			enc, err := log.Encoder(a.cfg.LogEncoder)
			if err != nil {
				return err
			}
			a.logger = log.NewWithLevel("bloomsync", zap.NewAtomicLevelAt(a.cfg.LogLevel), enc)
			return nil
		},
	}
	defaults := config.DefaultConfig()
	flags := cmd.PersistentFlags()
	flags.StringVarP(&fv.configPath, "config", "c", "", "load configuration from file")
	flags.StringVarP(&fv.dataDir, "data-dir", "d", defaults.DataDir, "directory of the event store and digests")
	flags.StringVar(&fv.logLevel, "log-level", defaults.LogLevel.String(), "logging level")
	flags.StringVar(&fv.logEncoder, "log-encoder", defaults.LogEncoder, "log encoder: console or json")
	flags.IntVar(&fv.metricsPort, "metrics-port", defaults.MetricsPort,
		"serve prometheus metrics on this port; 0 disables the server")
	flags.StringVar(&fv.metricsPush, "metrics-push", defaults.MetricsPush, "push metrics to this url")
	flags.DurationVar(&fv.metricsPushPeriod, "metrics-push-period", defaults.MetricsPushPeriod,
		"period between metric pushes")
	flags.StringSliceVar(&fv.spaces, "spaces", nil, "hex ids of the spaces to work on")
	flags.DurationVar(&fv.passTimeout, "pass-timeout", defaults.PassTimeout, "timeout of a local sync pass")

	cmd.AddCommand(
		newSeedCmd(a),
		newRunCmd(a),
		newCheckCmd(),
	)
	return cmd
}

// applyFlags overrides the config with the flags set on the command line.
func applyFlags(flags *pflag.FlagSet, fv *flagValues, cfg *config.Config) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "data-dir":
			cfg.DataDir = fv.dataDir
		case "log-level":
			var lvl zapcore.Level
			if err = lvl.UnmarshalText([]byte(fv.logLevel)); err != nil {
				err = fmt.Errorf("parse log-level: %w", err)
				return
			}
			cfg.LogLevel = lvl
		case "log-encoder":
			cfg.LogEncoder = fv.logEncoder
		case "metrics-port":
			cfg.MetricsPort = fv.metricsPort
		case "metrics-push":
			cfg.MetricsPush = fv.metricsPush
		case "metrics-push-period":
			cfg.MetricsPushPeriod = fv.metricsPushPeriod
		case "spaces":
			cfg.Spaces = make([]types.SpaceID, len(fv.spaces))
			for i, s := range fv.spaces {
				if err = cfg.Spaces[i].UnmarshalText([]byte(s)); err != nil {
					return
				}
			}
		case "pass-timeout":
			cfg.PassTimeout = fv.passTimeout
		}
	})
	return err
}
