package localsync

import (
	"github.com/bits-and-blooms/bloom/v3"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-bloomsync/common/types"
)

// TargetFalsePositiveRate is the false positive rate of the local bloom filter.
// With 1 in 100 false positives, two gossip rounds with a peer are enough to find
// practically all differences; 1 in 1000 would take a filter about twice as large.
const TargetFalsePositiveRate = 0.01

// finish builds the Bloom filter over the common key set of the local agents.
func (p *pass) finish() *Result {
	var keys KeySet
	if len(p.agents) != 0 {
		// all the key sets are equal after local sync
		keys = p.has[p.agents[0]]
	} else {
		keys = make(KeySet)
	}
	var filter *bloom.BloomFilter
	if keys.Len() == 0 {
		filter = bloom.New(1, 1)
	} else {
		p.logger.Debug("generating local bloom", zap.Int("local_op_count", keys.Len()))
		filter = bloom.NewWithEstimates(uint(keys.Len()), TargetFalsePositiveRate)
		for k := range keys {
			filter.Add(k.Bytes())
		}
	}
	keySetSize.Observe(float64(keys.Len()))
	return &Result{
		Data:         p.data,
		Keys:         keys,
		Bloom:        filter,
		Synced:       p.synced,
		Collected:    p.collected,
		AgentInfos:   p.agentInfos,
		AgentInfoErr: p.agentInfoErr,
	}
}

// MayContain reports whether the key may be in the local key set according to the
// Bloom filter. False positives happen at about TargetFalsePositiveRate.
func (r *Result) MayContain(k types.RecordKey) bool {
	return MayContain(r.Bloom, k)
}

// MayContain tests the key against a filter built by a local sync pass.
func MayContain(filter *bloom.BloomFilter, k types.RecordKey) bool {
	return filter.Test(k.Bytes())
}
