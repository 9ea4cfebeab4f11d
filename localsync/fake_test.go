package localsync_test

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/hash"
	"github.com/spacemeshos/go-bloomsync/localsync"
)

type delivery struct {
	to, from types.AgentID
	hash     types.OpHash
}

// fakeSender is an in-memory EventSender that keeps the ops of each local agent and
// applies local deliveries, so that convergence can be checked against it.
type fakeSender struct {
	t       *testing.T
	space   types.SpaceID
	ops     map[types.AgentID]map[types.OpHash][]byte
	infos   []*types.AgentInfoSigned
	opErrs  map[types.AgentID]error
	infoErr error

	infoQueries int
	fetched     map[types.OpHash]int
	delivered   []delivery
}

var _ localsync.EventSender = &fakeSender{}

func newFakeSender(t *testing.T, space types.SpaceID) *fakeSender {
	return &fakeSender{
		t:       t,
		space:   space,
		ops:     make(map[types.AgentID]map[types.OpHash][]byte),
		opErrs:  make(map[types.AgentID]error),
		fetched: make(map[types.OpHash]int),
	}
}

func (fs *fakeSender) addOp(agent types.AgentID, payload []byte) types.OpHash {
	h := types.OpHash(hash.Sum(payload))
	if fs.ops[agent] == nil {
		fs.ops[agent] = make(map[types.OpHash][]byte)
	}
	fs.ops[agent][h] = payload
	return h
}

func (fs *fakeSender) addAgentInfo(agent types.AgentID, signedAt uint64) *types.AgentInfoSigned {
	info := &types.AgentInfoSigned{
		Space:          fs.space,
		Agent:          agent,
		SignedAtMs:     signedAt,
		ExpiresAfterMs: 20 * 60 * 1000,
		Info:           []byte(fmt.Sprintf("info-%d", signedAt)),
	}
	fs.infos = append(fs.infos, info)
	return info
}

func (fs *fakeSender) opHashes(agent types.AgentID) []types.OpHash {
	var hs []types.OpHash
	for h := range fs.ops[agent] {
		hs = append(hs, h)
	}
	slices.SortFunc(hs, func(a, b types.OpHash) int { return bytes.Compare(a[:], b[:]) })
	return hs
}

func (fs *fakeSender) FetchOpHashesForConstraints(
	_ context.Context,
	space types.SpaceID,
	agent types.AgentID,
	query types.OpQuery,
) ([]types.OpHash, error) {
	require.Equal(fs.t, fs.space, space)
	require.Equal(fs.t, types.FullQuery(), query)
	if err := fs.opErrs[agent]; err != nil {
		return nil, err
	}
	return fs.opHashes(agent), nil
}

func (fs *fakeSender) QueryAgentInfoSigned(
	_ context.Context,
	space types.SpaceID,
	_ types.AgentID,
) ([]*types.AgentInfoSigned, error) {
	require.Equal(fs.t, fs.space, space)
	fs.infoQueries++
	if fs.infoErr != nil {
		return nil, fs.infoErr
	}
	return fs.infos, nil
}

func (fs *fakeSender) FetchOpHashData(
	_ context.Context,
	space types.SpaceID,
	agent types.AgentID,
	hashes []types.OpHash,
) ([]types.OpData, error) {
	require.Equal(fs.t, fs.space, space)
	var r []types.OpData
	for _, h := range hashes {
		fs.fetched[h]++
		if payload, found := fs.ops[agent][h]; found {
			r = append(r, types.OpData{Hash: h, Payload: payload})
		}
	}
	return r, nil
}

func (fs *fakeSender) Gossip(
	_ context.Context,
	space types.SpaceID,
	to, from types.AgentID,
	h types.OpHash,
	payload []byte,
) error {
	require.Equal(fs.t, fs.space, space)
	require.NotEqual(fs.t, to, from)
	require.Equal(fs.t, h, types.OpHash(hash.Sum(payload)), "payload doesn't match the hash")
	fs.delivered = append(fs.delivered, delivery{to: to, from: from, hash: h})
	fs.addOp(to, payload)
	return nil
}
