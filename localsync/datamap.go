package localsync

import (
	"bytes"
	"slices"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-bloomsync/common/types"
)

// DataMap caches the data of the records seen during a local sync pass, so that
// each record is fetched from the EventSender at most once.
type DataMap struct {
	m map[types.RecordKey]types.RecordData
}

// NewDataMap creates an empty DataMap.
func NewDataMap() *DataMap {
	return &DataMap{m: make(map[types.RecordKey]types.RecordData)}
}

// Get returns the data for the key, if present.
func (d *DataMap) Get(k types.RecordKey) (types.RecordData, bool) {
	data, found := d.m[k]
	return data, found
}

// Insert adds the record under its own key. Records that are already present are
// never overwritten; Insert returns false in that case.
func (d *DataMap) Insert(data types.RecordData) bool {
	k := data.Key()
	if _, found := d.m[k]; found {
		return false
	}
	d.m[k] = data
	return true
}

// Len returns the number of records in the map.
func (d *DataMap) Len() int {
	return len(d.m)
}

// KeySet is a set of record keys.
type KeySet map[types.RecordKey]struct{}

var _ zapcore.ArrayMarshaler = KeySet(nil)

// NewKeySet creates a KeySet containing the specified keys.
func NewKeySet(keys ...types.RecordKey) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add adds the key to the set.
func (s KeySet) Add(k types.RecordKey) {
	s[k] = struct{}{}
}

// Has returns true if the key is in the set.
func (s KeySet) Has(k types.RecordKey) bool {
	_, found := s[k]
	return found
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	return len(s)
}

// Clone returns a copy of the set.
func (s KeySet) Clone() KeySet {
	c := make(KeySet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Equal returns true if both sets contain the same keys.
func (s KeySet) Equal(other KeySet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Sorted returns the keys ordered by their canonical encoding.
func (s KeySet) Sorted() []types.RecordKey {
	type encoded struct {
		k types.RecordKey
		b []byte
	}
	items := make([]encoded, 0, len(s))
	for k := range s {
		items = append(items, encoded{k: k, b: k.Bytes()})
	}
	slices.SortFunc(items, func(a, b encoded) int {
		return bytes.Compare(a.b, b.b)
	})
	keys := make([]types.RecordKey, len(items))
	for i, item := range items {
		keys[i] = item.k
	}
	return keys
}

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (s KeySet) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	n := 0
	for k := range s {
		if n == 3 {
			enc.AppendString("...")
			break
		}
		enc.AppendString(k.ShortString())
		n++
	}
	return nil
}

// HasMap records which keys each local agent holds.
type HasMap map[types.AgentID]KeySet

// Entry returns the key set of the agent, creating an empty one if absent.
func (m HasMap) Entry(agent types.AgentID) KeySet {
	s, found := m[agent]
	if !found {
		s = make(KeySet)
		m[agent] = s
	}
	return s
}

// Clone returns a deep copy of the map.
func (m HasMap) Clone() HasMap {
	c := make(HasMap, len(m))
	for agent, s := range m {
		c[agent] = s.Clone()
	}
	return c
}

// Union returns the set of keys held by any agent.
func (m HasMap) Union() KeySet {
	u := make(KeySet)
	for _, s := range m {
		for k := range s {
			u.Add(k)
		}
	}
	return u
}

// Converged returns true if all agents hold the same keys.
func (m HasMap) Converged() bool {
	var first KeySet
	for _, s := range m {
		if first == nil {
			first = s
			continue
		}
		if !first.Equal(s) {
			return false
		}
	}
	return true
}
