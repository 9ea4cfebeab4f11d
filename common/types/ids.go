package types

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/spacemeshos/go-scale"
)

const (
	// IDLength is the length of space and agent identifiers and op hashes.
	IDLength = 32
)

// SpaceID identifies a DHT namespace. Content and agents are partitioned by space.
type SpaceID [IDLength]byte

// AgentID identifies a participant within a space.
type AgentID [IDLength]byte

// OpHash is the content hash of an op.
type OpHash [IDLength]byte

// Shorten shortens a string to a specified length.
func Shorten(s string, maxlen int) string {
	return s[:min(maxlen, len(s))]
}

// String implements fmt.Stringer.
func (id SpaceID) String() string { return hex.EncodeToString(id[:]) }

// ShortString returns the first 10 hex characters of the id, for logging purposes.
func (id SpaceID) ShortString() string { return Shorten(id.String(), 10) }

// Bytes returns the id as a byte slice.
func (id SpaceID) Bytes() []byte { return id[:] }

// EncodeScale implements scale codec interface.
func (id *SpaceID) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, id[:])
}

// DecodeScale implements scale codec interface.
func (id *SpaceID) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, id[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id SpaceID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SpaceID) UnmarshalText(buf []byte) error {
	return unmarshalHex("space id", id[:], buf)
}

// String implements fmt.Stringer.
func (id AgentID) String() string { return hex.EncodeToString(id[:]) }

// ShortString returns the first 10 hex characters of the id, for logging purposes.
func (id AgentID) ShortString() string { return Shorten(id.String(), 10) }

// Bytes returns the id as a byte slice.
func (id AgentID) Bytes() []byte { return id[:] }

// EncodeScale implements scale codec interface.
func (id *AgentID) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, id[:])
}

// DecodeScale implements scale codec interface.
func (id *AgentID) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, id[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id AgentID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *AgentID) UnmarshalText(buf []byte) error {
	return unmarshalHex("agent id", id[:], buf)
}

// String implements fmt.Stringer.
func (h OpHash) String() string { return hex.EncodeToString(h[:]) }

// ShortString returns the first 10 hex characters of the hash, for logging purposes.
func (h OpHash) ShortString() string { return Shorten(h.String(), 10) }

// Bytes returns the hash as a byte slice.
func (h OpHash) Bytes() []byte { return h[:] }

// MarshalText implements encoding.TextMarshaler.
func (h OpHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *OpHash) UnmarshalText(buf []byte) error {
	return unmarshalHex("op hash", h[:], buf)
}

// Loc returns the location of the op on the DHT ring.
func (h OpHash) Loc() uint32 {
	return binary.BigEndian.Uint32(h[:4])
}

// EncodeScale implements scale codec interface.
func (h *OpHash) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *OpHash) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}

// BytesToSpaceID copies the buffer into a SpaceID.
func BytesToSpaceID(buf []byte) (id SpaceID) {
	copy(id[:], buf)
	return id
}

// BytesToAgentID copies the buffer into an AgentID.
func BytesToAgentID(buf []byte) (id AgentID) {
	copy(id[:], buf)
	return id
}

// BytesToOpHash copies the buffer into an OpHash.
func BytesToOpHash(buf []byte) (h OpHash) {
	copy(h[:], buf)
	return h
}

// RandomSpaceID generates a random SpaceID.
func RandomSpaceID() (id SpaceID) {
	randomFill(id[:])
	return id
}

// RandomAgentID generates a random AgentID.
func RandomAgentID() (id AgentID) {
	randomFill(id[:])
	return id
}

// RandomOpHash generates a random OpHash.
func RandomOpHash() (h OpHash) {
	randomFill(h[:])
	return h
}

func randomFill(b []byte) {
	if _, err := rand.Read(b); err != nil {
		panic("BUG: crypto/rand failed: " + err.Error())
	}
}

func unmarshalHex(what string, dst, src []byte) error {
	if hex.DecodedLen(len(src)) != len(dst) {
		return fmt.Errorf("%s: expected %d hex characters, got %d", what, 2*len(dst), len(src))
	}
	if _, err := hex.Decode(dst, src); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
