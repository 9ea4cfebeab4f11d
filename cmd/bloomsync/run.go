package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/natefinch/atomic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/evtstore"
	"github.com/spacemeshos/go-bloomsync/localsync"
	"github.com/spacemeshos/go-bloomsync/log"
	"github.com/spacemeshos/go-bloomsync/metrics"
)

func newRunCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a local sync pass per space and write the bloom digests",
		Long: `Run a local sync pass for every configured space, or for every space of the
event store if none are configured. Passes for different spaces run concurrently.
The digest of each space is written to <out>/<space id>.bloom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				out = a.digestDir()
			}
			return a.run(cmd.Context(), out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "directory for the digests (default <data-dir>/digests)")
	return cmd
}

func (a *app) run(ctx context.Context, out string) error {
	if a.cfg.MetricsPort != 0 {
		srv := metrics.StartMetricsServer(a.logger.Named("metrics"), a.cfg.MetricsPort)
		defer srv.Close()
	}
	if a.cfg.MetricsPush != "" {
		instance, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("get hostname: %w", err)
		}
		pushCtx, stop := context.WithCancel(context.Background())
		done := metrics.StartPushingMetrics(pushCtx, a.logger.Named("metrics"), prometheus.DefaultGatherer,
			a.cfg.MetricsPush, instance, a.cfg.MetricsPushPeriod)
		defer func() {
			stop()
			<-done
		}()
	}
	if err := os.MkdirAll(out, 0o700); err != nil {
		return fmt.Errorf("create digest dir: %w", err)
	}
	store, closeStore, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	spaces := a.cfg.Spaces
	if len(spaces) == 0 {
		if spaces, err = store.Spaces(ctx); err != nil {
			return err
		}
	}
	if len(spaces) == 0 {
		a.logger.Warn("no spaces to sync, seed the event store first")
		return nil
	}
	eg, ctx := errgroup.WithContext(ctx)
	for _, space := range spaces {
		eg.Go(func() error {
			return a.runSpace(ctx, store, space, out)
		})
	}
	return eg.Wait()
}

func (a *app) runSpace(ctx context.Context, store *evtstore.Store, space types.SpaceID, out string) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.PassTimeout)
	defer cancel()
	logger := a.logger.With(log.ZShortStringer("space", space))
	agents, err := store.LocalAgents(ctx, space)
	if err != nil {
		return err
	}
	r, err := localsync.Run(ctx, space, store, agents, localsync.WithLogger(a.logger.Named("localsync")))
	if err != nil {
		return fmt.Errorf("local sync of space %s: %w", space.ShortString(), err)
	}
	failed := 0
	for _, outcome := range r.Collected {
		if outcome.Failed() {
			failed++
		}
	}
	path := filepath.Join(out, space.String()+".bloom")
	if err := writeDigest(path, r.Bloom); err != nil {
		return err
	}
	logger.Info("local sync pass complete",
		zap.Int("agents", len(r.Collected)),
		zap.Int("failed_agents", failed),
		zap.Int("agent_infos", r.AgentInfos),
		zap.NamedError("agent_info_error", r.AgentInfoErr),
		zap.Int("keys", r.Keys.Len()),
		zap.Int("synced", r.Synced),
		zap.Duration("elapsed", r.Elapsed),
		zap.String("digest", path))
	return nil
}

func writeDigest(path string, filter *bloom.BloomFilter) error {
	var buf bytes.Buffer
	if _, err := filter.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode digest: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write digest %s: %w", path, err)
	}
	return nil
}

func readDigest(path string) (*bloom.BloomFilter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open digest: %w", err)
	}
	defer f.Close()
	filter := &bloom.BloomFilter{}
	if _, err := filter.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("read digest %s: %w", path, err)
	}
	return filter, nil
}
