package types

import (
	"fmt"
	"math"
)

// fullHalfLength is the smallest half length that covers the whole ring.
const fullHalfLength = 1<<31 + 1

// DhtArc is a range of DHT locations centered on CenterLoc, extending HalfLength-1
// locations to each side of the center, wrapping around the ring.
// A zero HalfLength denotes an empty arc.
type DhtArc struct {
	CenterLoc  uint32
	HalfLength uint32
}

// FullArc returns the arc covering every DHT location.
func FullArc() DhtArc {
	return DhtArc{CenterLoc: 0, HalfLength: math.MaxUint32}
}

// IsFull returns true if the arc covers the whole ring.
func (a DhtArc) IsFull() bool {
	return a.HalfLength >= fullHalfLength
}

// IsEmpty returns true if the arc covers no location at all.
func (a DhtArc) IsEmpty() bool {
	return a.HalfLength == 0
}

// Contains returns true if loc is within the arc.
func (a DhtArc) Contains(loc uint32) bool {
	switch {
	case a.IsFull():
		return true
	case a.IsEmpty():
		return false
	}
	// uint32 arithmetic wraps around the ring
	dist := min(loc-a.CenterLoc, a.CenterLoc-loc)
	return dist < a.HalfLength
}

func (a DhtArc) String() string {
	switch {
	case a.IsFull():
		return "arc(full)"
	case a.IsEmpty():
		return "arc(empty)"
	}
	return fmt.Sprintf("arc(%d±%d)", a.CenterLoc, a.HalfLength-1)
}

// TimeWindow is an inclusive range of unix timestamps, in seconds.
type TimeWindow struct {
	Since int64
	Until int64
}

// FullTimeWindow returns the window covering all representable timestamps.
func FullTimeWindow() TimeWindow {
	return TimeWindow{Since: math.MinInt64, Until: math.MaxInt64}
}

// Contains returns true if ts falls within the window.
func (w TimeWindow) Contains(ts int64) bool {
	return w.Since <= ts && ts <= w.Until
}

// OpQuery constrains the op hashes returned by an event source.
type OpQuery struct {
	Arc    DhtArc
	Window TimeWindow
}

// FullQuery returns the unbounded query: every location and every timestamp.
func FullQuery() OpQuery {
	return OpQuery{Arc: FullArc(), Window: FullTimeWindow()}
}

// Matches returns true if an op at the given location and timestamp satisfies the query.
func (q OpQuery) Matches(loc uint32, ts int64) bool {
	return q.Arc.Contains(loc) && q.Window.Contains(ts)
}
