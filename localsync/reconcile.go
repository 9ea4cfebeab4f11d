package localsync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/log"
)

var (
	// ErrFetchCardinality is returned when fetching a single op does not yield
	// exactly one op.
	ErrFetchCardinality = errors.New("op fetch returned unexpected number of ops")
	// ErrFetchMismatch is returned when a fetched op has a different hash than the
	// requested one.
	ErrFetchMismatch = errors.New("op fetch returned unexpected op")
)

// localSync delivers to every local agent the records held by any other local agent,
// so that all the key sets in the HasMap become equal.
// The key sets collected before the pass are iterated while the deliveries update a
// separate working copy.
func (p *pass) localSync(ctx context.Context) error {
	old := p.has
	work := p.has.Clone()
	for _, from := range p.agents {
		keys := old[from].Sorted()
		for _, to := range p.agents {
			if from == to {
				continue
			}
			has := work[to]
			for _, k := range keys {
				if has.Has(k) {
					continue
				}
				data, err := p.resolve(ctx, from, k)
				if err != nil {
					return err
				}
				if err := p.deliver(ctx, from, to, data); err != nil {
					return err
				}
				has.Add(k)
				p.synced++
			}
		}
	}
	if p.synced > 0 {
		syncedOps.Add(float64(p.synced))
		p.logger.Debug("local sync", zap.Int("local_synced_ops", p.synced))
	}
	p.has = work
	return nil
}

// resolve returns the data for the key, fetching it from the agent that holds it
// if it is not in the DataMap yet.
func (p *pass) resolve(ctx context.Context, from types.AgentID, k types.RecordKey) (types.RecordData, error) {
	if data, found := p.data.Get(k); found {
		dataHits.Inc()
		return data, nil
	}
	switch k := k.(type) {
	case types.OpKey:
		dataFetches.Inc()
		ops, err := p.sender.FetchOpHashData(ctx, p.space, from, []types.OpHash{k.Hash})
		if err != nil {
			return nil, fmt.Errorf("fetch op %s from agent %s: %w",
				k.Hash.ShortString(), from.ShortString(), err)
		}
		if len(ops) != 1 {
			return nil, fmt.Errorf("%w: op %s from agent %s: got %d",
				ErrFetchCardinality, k.Hash.ShortString(), from.ShortString(), len(ops))
		}
		if ops[0].Hash != k.Hash {
			return nil, fmt.Errorf("%w: requested %s from agent %s, got %s",
				ErrFetchMismatch, k.Hash.ShortString(), from.ShortString(), ops[0].Hash.ShortString())
		}
		data := &types.OpData{Hash: ops[0].Hash, Payload: ops[0].Payload}
		p.data.Insert(data)
		return data, nil
	case types.AgentInfoKey:
		// agent infos are collected into the DataMap before reconciliation
		panic(fmt.Sprintf("BUG: agent info %s missing from the data map", k.ShortString()))
	default:
		panic(fmt.Sprintf("BUG: unexpected record key type %T", k))
	}
}

// deliver passes the record from one local agent to another.
func (p *pass) deliver(ctx context.Context, from, to types.AgentID, data types.RecordData) error {
	switch data := data.(type) {
	case *types.OpData:
		p.logger.Debug("delivering op to local agent",
			log.ZShortStringer("from", from),
			log.ZShortStringer("to", to),
			log.ZShortStringer("op", data.Hash))
		if err := p.sender.Gossip(ctx, p.space, to, from, data.Hash, data.Payload); err != nil {
			return fmt.Errorf("deliver op %s from agent %s to agent %s: %w",
				data.Hash.ShortString(), from.ShortString(), to.ShortString(), err)
		}
		return nil
	case *types.AgentInfoData:
		// every local agent got every agent info key during collection
		panic(fmt.Sprintf("BUG: agent info %s is never missing locally", data.Key().ShortString()))
	default:
		panic(fmt.Sprintf("BUG: unexpected record data type %T", data))
	}
}
