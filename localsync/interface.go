package localsync

import (
	"context"

	"github.com/spacemeshos/go-bloomsync/common/types"
)

//go:generate mockgen -typed -package=localsync_test -destination=./mocks_test.go -source=./interface.go

// EventSender is the source of local knowledge: it answers queries about the ops and
// agent infos held by local agents and accepts records delivered between them.
type EventSender interface {
	// FetchOpHashesForConstraints returns the hashes of the ops held by the agent
	// that match the query.
	FetchOpHashesForConstraints(
		ctx context.Context,
		space types.SpaceID,
		agent types.AgentID,
		query types.OpQuery,
	) ([]types.OpHash, error)
	// QueryAgentInfoSigned returns the signed agent infos known in the space.
	// The agent info store is shared by all local agents of a space, the agent only
	// anchors the query.
	QueryAgentInfoSigned(
		ctx context.Context,
		space types.SpaceID,
		agent types.AgentID,
	) ([]*types.AgentInfoSigned, error)
	// FetchOpHashData returns the ops with the specified hashes held by the agent.
	FetchOpHashData(
		ctx context.Context,
		space types.SpaceID,
		agent types.AgentID,
		hashes []types.OpHash,
	) ([]types.OpData, error)
	// Gossip delivers an op from one local agent to another.
	Gossip(
		ctx context.Context,
		space types.SpaceID,
		to, from types.AgentID,
		hash types.OpHash,
		payload []byte,
	) error
}
