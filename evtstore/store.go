// Package evtstore implements localsync.EventSender on top of a leveldb database.
//
// Ops are stored per (space, agent) together with the time they were received.
// Agent infos are shared by all the agents of a space.
package evtstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-bloomsync/codec"
	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/database"
	"github.com/spacemeshos/go-bloomsync/hash"
	"github.com/spacemeshos/go-bloomsync/localsync"
	"github.com/spacemeshos/go-bloomsync/log"
)

// ErrHashMismatch is returned when an op payload doesn't match its announced hash.
var ErrHashMismatch = errors.New("op hash mismatch")

// MaxOpSize is the maximum size of a stored op payload.
const MaxOpSize = 1 << 20

const (
	agentPrefix byte = 'g'
	opPrefix    byte = 'o'
	infoPrefix  byte = 'a'
)

var _ localsync.EventSender = (*Store)(nil)

// Opt specifies an option for the Store.
type Opt func(s *Store)

// WithLogger specifies the logger for the Store.
func WithLogger(logger *zap.Logger) Opt {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock specifies the clock used to timestamp received ops and to expire
// agent infos.
func WithClock(clock clockwork.Clock) Opt {
	return func(s *Store) {
		s.clock = clock
	}
}

// Store keeps the ops and agent infos of the local agents of a node.
type Store struct {
	logger *zap.Logger
	clock  clockwork.Clock
	db     *database.LDBDatabase
}

// New creates a Store over the database.
func New(db *database.LDBDatabase, opts ...Opt) *Store {
	s := &Store{
		logger: zap.NewNop(),
		clock:  clockwork.NewRealClock(),
		db:     db,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type storedOp struct {
	ReceivedAt int64
	Payload    []byte
}

// EncodeScale implements scale codec interface.
func (o *storedOp) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact64(enc, uint64(o.ReceivedAt))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, o.Payload, MaxOpSize)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (o *storedOp) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		o.ReceivedAt = int64(field)
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxOpSize)
		if err != nil {
			return total, err
		}
		total += n
		o.Payload = field
	}
	return total, nil
}

func agentKey(space types.SpaceID, agent types.AgentID) []byte {
	return concat(agentPrefix, space[:], agent[:])
}

func opKey(space types.SpaceID, agent types.AgentID, h types.OpHash) []byte {
	return concat(opPrefix, space[:], agent[:], h[:])
}

func infoKey(space types.SpaceID, agent types.AgentID, signedAt uint64) []byte {
	return binary.BigEndian.AppendUint64(concat(infoPrefix, space[:], agent[:]), signedAt)
}

func concat(prefix byte, parts ...[]byte) []byte {
	key := []byte{prefix}
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// AddAgent registers a local agent in the space.
func (s *Store) AddAgent(space types.SpaceID, agent types.AgentID) error {
	if err := s.db.Put(agentKey(space, agent), nil); err != nil {
		return fmt.Errorf("add agent %s: %w", agent.ShortString(), err)
	}
	return nil
}

// LocalAgents returns the local agents registered in the space, ordered by id.
func (s *Store) LocalAgents(ctx context.Context, space types.SpaceID) ([]types.AgentID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var agents []types.AgentID
	prefix := concat(agentPrefix, space[:])
	if err := s.db.Iterate(prefix, func(key, _ []byte) bool {
		agents = append(agents, types.BytesToAgentID(key[len(prefix):]))
		return true
	}); err != nil {
		return nil, fmt.Errorf("list agents in space %s: %w", space.ShortString(), err)
	}
	return agents, nil
}

// Spaces returns the spaces that have at least one local agent, ordered by id.
func (s *Store) Spaces(ctx context.Context) ([]types.SpaceID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var spaces []types.SpaceID
	if err := s.db.Iterate([]byte{agentPrefix}, func(key, _ []byte) bool {
		space := types.BytesToSpaceID(key[1:])
		if len(spaces) == 0 || spaces[len(spaces)-1] != space {
			spaces = append(spaces, space)
		}
		return true
	}); err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	return spaces, nil
}

// AddOp stores the op for the agent and returns its hash. The agent is registered
// in the space if it is not yet.
func (s *Store) AddOp(space types.SpaceID, agent types.AgentID, payload []byte) (types.OpHash, error) {
	h := types.OpHash(hash.Sum(payload))
	if err := s.AddAgent(space, agent); err != nil {
		return h, err
	}
	if err := s.putOp(space, agent, h, payload); err != nil {
		return h, err
	}
	return h, nil
}

func (s *Store) putOp(space types.SpaceID, agent types.AgentID, h types.OpHash, payload []byte) error {
	buf, err := codec.Encode(&storedOp{ReceivedAt: s.clock.Now().Unix(), Payload: payload})
	if err != nil {
		return fmt.Errorf("encode op %s: %w", h.ShortString(), err)
	}
	if err := s.db.Put(opKey(space, agent, h), buf); err != nil {
		return fmt.Errorf("store op %s for agent %s: %w", h.ShortString(), agent.ShortString(), err)
	}
	return nil
}

func (s *Store) getOp(space types.SpaceID, agent types.AgentID, h types.OpHash) (*storedOp, error) {
	buf, err := s.db.Get(opKey(space, agent, h))
	if err != nil {
		return nil, err
	}
	var op storedOp
	if err := codec.Decode(buf, &op); err != nil {
		return nil, fmt.Errorf("op %s: %w", h.ShortString(), err)
	}
	return &op, nil
}

// PutAgentInfo stores the agent info in its space. Agent infos are visible to every
// local agent of the space.
func (s *Store) PutAgentInfo(info *types.AgentInfoSigned) error {
	buf, err := codec.Encode(info)
	if err != nil {
		return fmt.Errorf("encode agent info: %w", err)
	}
	if err := s.db.Put(infoKey(info.Space, info.Agent, info.SignedAtMs), buf); err != nil {
		return fmt.Errorf("store agent info %s: %w", info.Key().ShortString(), err)
	}
	return nil
}

// FetchOpHashesForConstraints implements localsync.EventSender.
func (s *Store) FetchOpHashesForConstraints(
	ctx context.Context,
	space types.SpaceID,
	agent types.AgentID,
	query types.OpQuery,
) ([]types.OpHash, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		hashes []types.OpHash
		errs   []error
	)
	prefix := concat(opPrefix, space[:], agent[:])
	if err := s.db.Iterate(prefix, func(key, value []byte) bool {
		h := types.BytesToOpHash(key[len(prefix):])
		var op storedOp
		if err := codec.Decode(value, &op); err != nil {
			errs = append(errs, fmt.Errorf("op %s: %w", h.ShortString(), err))
			return true
		}
		if query.Matches(h.Loc(), op.ReceivedAt) {
			hashes = append(hashes, h)
		}
		return true
	}); err != nil {
		return nil, fmt.Errorf("list ops of agent %s: %w", agent.ShortString(), err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return hashes, nil
}

// QueryAgentInfoSigned implements localsync.EventSender. The agent infos are shared
// by the local agents of the space, so the agent only anchors the query. Expired
// agent infos are skipped.
func (s *Store) QueryAgentInfoSigned(
	ctx context.Context,
	space types.SpaceID,
	agent types.AgentID,
) ([]*types.AgentInfoSigned, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		infos []*types.AgentInfoSigned
		errs  []error
	)
	now := s.clock.Now()
	if err := s.db.Iterate(concat(infoPrefix, space[:]), func(_, value []byte) bool {
		info := &types.AgentInfoSigned{}
		if err := codec.Decode(value, info); err != nil {
			errs = append(errs, fmt.Errorf("agent info: %w", err))
			return true
		}
		if info.Expired(now) {
			s.logger.Debug("skipping expired agent info", zap.Object("info", info))
			return true
		}
		infos = append(infos, info)
		return true
	}); err != nil {
		return nil, fmt.Errorf("list agent infos for %s: %w", agent.ShortString(), err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return infos, nil
}

// FetchOpHashData implements localsync.EventSender. Ops the agent doesn't hold are
// omitted from the result.
func (s *Store) FetchOpHashData(
	ctx context.Context,
	space types.SpaceID,
	agent types.AgentID,
	hashes []types.OpHash,
) ([]types.OpData, error) {
	r := make([]types.OpData, 0, len(hashes))
	for _, h := range hashes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		op, err := s.getOp(space, agent, h)
		switch {
		case errors.Is(err, database.ErrNotFound):
			continue
		case err != nil:
			return nil, fmt.Errorf("fetch op %s of agent %s: %w", h.ShortString(), agent.ShortString(), err)
		}
		r = append(r, types.OpData{Hash: h, Payload: op.Payload})
	}
	return r, nil
}

// Gossip implements localsync.EventSender by storing the op for the destination agent.
func (s *Store) Gossip(
	ctx context.Context,
	space types.SpaceID,
	to, from types.AgentID,
	h types.OpHash,
	payload []byte,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if actual := types.OpHash(hash.Sum(payload)); actual != h {
		return fmt.Errorf("%w: announced %s, payload hashes to %s",
			ErrHashMismatch, h.ShortString(), actual.ShortString())
	}
	s.logger.Debug("received local op",
		log.ZShortStringer("space", space),
		log.ZShortStringer("from", from),
		log.ZShortStringer("to", to),
		log.ZShortStringer("op", h))
	if err := s.AddAgent(space, to); err != nil {
		return err
	}
	return s.putOp(space, to, h, payload)
}
