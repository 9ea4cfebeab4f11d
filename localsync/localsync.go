// Package localsync reconciles the knowledge of the local agents of a node within
// one space and summarizes the result as a Bloom filter for remote gossip.
//
// A pass runs in four strictly sequential stages:
//   - collect the op hashes held by every local agent;
//   - collect the agent infos of the space, once, on behalf of all local agents;
//   - deliver every record some local agent lacks from a local agent that has it;
//   - build a Bloom filter over the now common key set.
//
// Failures while collecting are tolerated, the pass proceeds with less knowledge.
// Failures fetching or delivering a record that is known to be missing abort the pass.
package localsync

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/log"
)

// Opt specifies an option for a local sync pass.
type Opt func(p *pass)

// WithLogger specifies the logger for the pass.
func WithLogger(logger *zap.Logger) Opt {
	return func(p *pass) {
		p.logger = logger
	}
}

// WithClock specifies the clock used to measure the pass.
func WithClock(clock clockwork.Clock) Opt {
	return func(p *pass) {
		p.clock = clock
	}
}

// CollectOutcome records what collection learned about a local agent.
// It tells an agent that holds no ops apart from one whose query failed.
type CollectOutcome struct {
	// Ops is the number of op hashes reported for the agent.
	Ops int
	// Err is the error returned by the op hash query, if any. An agent whose query
	// failed contributes nothing to the pass but still receives the records of
	// the other agents.
	Err error
}

// Failed returns true if the op hash query for the agent failed.
func (o CollectOutcome) Failed() bool {
	return o.Err != nil
}

// Result is the outcome of a successful local sync pass.
type Result struct {
	// Data holds the records fetched during the pass, so that they can be reused
	// by the gossip round without fetching them again.
	Data *DataMap
	// Keys is the key set shared by all local agents after the pass.
	Keys KeySet
	// Bloom is a filter over Keys with TargetFalsePositiveRate.
	Bloom *bloom.BloomFilter
	// Synced is the number of records delivered between local agents.
	Synced int
	// Collected is the op collection outcome per local agent.
	Collected map[types.AgentID]CollectOutcome
	// AgentInfos is the number of agent infos returned by the shared query.
	AgentInfos int
	// AgentInfoErr is the error returned by the agent info query, if any.
	AgentInfoErr error
	// Elapsed is the duration of the pass.
	Elapsed time.Duration
}

type pass struct {
	logger *zap.Logger
	clock  clockwork.Clock
	space  types.SpaceID
	sender EventSender
	// agents are the local agents, deduplicated and sorted
	agents []types.AgentID
	data   *DataMap
	has    HasMap

	collected    map[types.AgentID]CollectOutcome
	agentInfos   int
	agentInfoErr error
	synced       int
}

func newPass(space types.SpaceID, sender EventSender, agents []types.AgentID, opts ...Opt) *pass {
	p := &pass{
		logger:    zap.NewNop(),
		clock:     clockwork.NewRealClock(),
		space:     space,
		sender:    sender,
		agents:    sortedAgents(agents),
		data:      NewDataMap(),
		has:       make(HasMap),
		collected: make(map[types.AgentID]CollectOutcome),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(log.ZShortStringer("space", space))
	return p
}

func sortedAgents(agents []types.AgentID) []types.AgentID {
	sorted := slices.Clone(agents)
	slices.SortFunc(sorted, func(a, b types.AgentID) int {
		return bytes.Compare(a[:], b[:])
	})
	return slices.Compact(sorted)
}

// Run performs a local sync pass over the local agents of the space.
// Either the pass completes and the Result is returned, or an error is returned and
// the partial state of the pass is discarded.
func Run(
	ctx context.Context,
	space types.SpaceID,
	sender EventSender,
	agents []types.AgentID,
	opts ...Opt,
) (*Result, error) {
	p := newPass(space, sender, agents, opts...)
	start := p.clock.Now()
	if err := p.run(ctx); err != nil {
		passFail.Observe(p.clock.Since(start).Seconds())
		return nil, err
	}
	r := p.finish()
	r.Elapsed = p.clock.Since(start)
	passOK.Observe(r.Elapsed.Seconds())
	return r, nil
}

func (p *pass) run(ctx context.Context) error {
	if err := p.collectOps(ctx); err != nil {
		return err
	}
	if err := p.collectAgents(ctx); err != nil {
		return err
	}
	return p.localSync(ctx)
}
