package types

import (
	"time"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"
)

const (
	// MaxAgentInfoSize is the maximum size of the encoded agent info blob.
	MaxAgentInfoSize = 4096
	// SignatureSize is the size of an agent info signature.
	SignatureSize = 64
)

// AgentInfoSigned is a signed record advertising an agent's presence in a space.
// Agent infos are shared by all agents of a node within one space.
type AgentInfoSigned struct {
	Space          SpaceID
	Agent          AgentID
	SignedAtMs     uint64
	ExpiresAfterMs uint64
	// Info is the encoded agent info the signature covers.
	Info      []byte
	Signature [SignatureSize]byte
}

// Key returns the key addressing this agent info.
func (a *AgentInfoSigned) Key() AgentInfoKey {
	return AgentInfoKey{Agent: a.Agent, SignedAtMs: a.SignedAtMs}
}

// Expired returns true if the agent info is no longer valid at the given time.
func (a *AgentInfoSigned) Expired(now time.Time) bool {
	return uint64(now.UnixMilli()) > a.SignedAtMs+a.ExpiresAfterMs
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (a *AgentInfoSigned) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("space", a.Space.ShortString())
	enc.AddString("agent", a.Agent.ShortString())
	enc.AddUint64("signed_at_ms", a.SignedAtMs)
	enc.AddUint64("expires_after_ms", a.ExpiresAfterMs)
	return nil
}

// EncodeScale implements scale codec interface.
func (a *AgentInfoSigned) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := a.Space.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := a.Agent.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, a.SignedAtMs)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, a.ExpiresAfterMs)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, a.Info, MaxAgentInfoSize)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, a.Signature[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (a *AgentInfoSigned) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := a.Space.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := a.Agent.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		a.SignedAtMs = field
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		a.ExpiresAfterMs = field
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxAgentInfoSize)
		if err != nil {
			return total, err
		}
		total += n
		a.Info = field
	}
	{
		n, err := scale.DecodeByteArray(dec, a.Signature[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
