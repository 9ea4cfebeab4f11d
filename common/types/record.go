package types

import (
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-bloomsync/codec"
)

const (
	opKeyTag        byte = 0
	agentInfoKeyTag byte = 1
)

// RecordKey addresses a record known to an agent: either an op (OpKey) or a signed
// agent info (AgentInfoKey). Keys are comparable values and can be used as map keys.
type RecordKey interface {
	scale.Encodable
	// Bytes returns the canonical encoding of the key.
	Bytes() []byte
	String() string
	ShortString() string
	isRecordKey()
}

// OpKey addresses an op by its content hash.
type OpKey struct {
	Hash OpHash
}

var _ RecordKey = OpKey{}

func (OpKey) isRecordKey() {}

// Bytes returns the canonical encoding of the key.
func (k OpKey) Bytes() []byte { return codec.MustEncode(k) }

func (k OpKey) String() string { return "op:" + k.Hash.String() }

// ShortString returns a shortened representation of the key, for logging purposes.
func (k OpKey) ShortString() string { return "op:" + k.Hash.ShortString() }

// EncodeScale implements scale codec interface.
func (k OpKey) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByte(enc, opKeyTag)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := k.Hash.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// AgentInfoKey addresses a signed agent info by its agent and signing time.
type AgentInfoKey struct {
	Agent      AgentID
	SignedAtMs uint64
}

var _ RecordKey = AgentInfoKey{}

func (AgentInfoKey) isRecordKey() {}

// Bytes returns the canonical encoding of the key.
func (k AgentInfoKey) Bytes() []byte { return codec.MustEncode(k) }

func (k AgentInfoKey) String() string {
	return fmt.Sprintf("agent:%s@%d", k.Agent, k.SignedAtMs)
}

// ShortString returns a shortened representation of the key, for logging purposes.
func (k AgentInfoKey) ShortString() string {
	return fmt.Sprintf("agent:%s@%d", k.Agent.ShortString(), k.SignedAtMs)
}

// EncodeScale implements scale codec interface.
func (k AgentInfoKey) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByte(enc, agentInfoKeyTag)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := k.Agent.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, k.SignedAtMs)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// RecordData is the payload addressed by a RecordKey: either *OpData or *AgentInfoData.
type RecordData interface {
	// Key returns the key addressing this record.
	Key() RecordKey
	isRecordData()
}

// OpData is an op together with its content hash.
type OpData struct {
	Hash    OpHash
	Payload []byte
}

var _ RecordData = (*OpData)(nil)

func (*OpData) isRecordData() {}

// Key returns the key addressing this op.
func (d *OpData) Key() RecordKey { return OpKey{Hash: d.Hash} }

// AgentInfoData wraps a signed agent info as a record.
type AgentInfoData struct {
	Info *AgentInfoSigned
}

var _ RecordData = (*AgentInfoData)(nil)

func (*AgentInfoData) isRecordData() {}

// Key returns the key addressing this agent info.
func (d *AgentInfoData) Key() RecordKey { return d.Info.Key() }
