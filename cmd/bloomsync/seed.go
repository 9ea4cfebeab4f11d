package main

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/config"
	"github.com/spacemeshos/go-bloomsync/evtstore"
	"github.com/spacemeshos/go-bloomsync/log"
)

const agentInfoLifetime = 20 * time.Minute

func newSeedCmd(a *app) *cobra.Command {
	var newSpaces int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "populate the event store with local agents holding random ops",
		Long: `Populate the event store with local agents holding random ops.
The spaces from the config are seeded, or new random spaces if none are configured.
The ids of the seeded spaces are printed one per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			spaces := a.cfg.Spaces
			if len(spaces) == 0 {
				spaces = make([]types.SpaceID, newSpaces)
				for i := range spaces {
					spaces[i] = types.RandomSpaceID()
				}
			}
			for _, space := range spaces {
				if err := seedSpace(store, space, a.cfg.Seed, time.Now()); err != nil {
					return fmt.Errorf("seed space %s: %w", space.ShortString(), err)
				}
				a.logger.Info("seeded space",
					log.ZShortStringer("space", space),
					zap.Int("agents", a.cfg.Seed.AgentsPerSpace),
					zap.Int("ops_per_agent", a.cfg.Seed.OpsPerAgent+a.cfg.Seed.SharedOps))
				fmt.Fprintln(cmd.OutOrStdout(), space.String())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&newSpaces, "new-spaces", 1, "number of random spaces to seed if no spaces are configured")
	return cmd
}

func seedSpace(s *evtstore.Store, space types.SpaceID, cfg config.SeedConfig, now time.Time) error {
	agents := make([]types.AgentID, cfg.AgentsPerSpace)
	for i := range agents {
		agents[i] = types.RandomAgentID()
		if err := s.AddAgent(space, agents[i]); err != nil {
			return err
		}
	}
	for range cfg.SharedOps {
		payload := randomBytes(cfg.OpSize)
		for _, agent := range agents {
			if _, err := s.AddOp(space, agent, payload); err != nil {
				return err
			}
		}
	}
	for _, agent := range agents {
		for range cfg.OpsPerAgent {
			if _, err := s.AddOp(space, agent, randomBytes(cfg.OpSize)); err != nil {
				return err
			}
		}
	}
	for i := range cfg.AgentInfos {
		info := &types.AgentInfoSigned{
			Space:          space,
			SignedAtMs:     uint64(now.UnixMilli()),
			ExpiresAfterMs: uint64(agentInfoLifetime.Milliseconds()),
			Info:           randomBytes(64),
		}
		if i < len(agents) {
			info.Agent = agents[i]
		} else {
			info.Agent = types.RandomAgentID()
		}
		copy(info.Signature[:], randomBytes(types.SignatureSize))
		if err := s.PutAgentInfo(info); err != nil {
			return err
		}
	}
	return nil
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("BUG: crypto/rand failed: " + err.Error())
	}
	return b
}
