// Package exclusions tracks rectangular obstacles anchored to the left or
// right margin of a fixed horizontal extent and answers where a box of a
// given size can be placed against a margin, as low as possible, without
// overlapping any of them. The vertical axis is partitioned into bands over
// which the intrusion from each margin is constant; the bands live in a
// splay.SplayMap keyed by their start position, searched through its
// predicate-driven primitives.
package exclusions

import (
	"fmt"
	"math"
	"strings"

	"github.com/layoutalgo/splay"
)

// Au is a signed application-unit length. MaxAu is reserved to mark the open
// end of the one unbounded band.
type Au int32

// MaxAu is the sentinel for an unbounded coordinate.
const MaxAu Au = math.MaxInt32

// Side selects which margin an exclusion or placement is anchored to.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Point is an (inline, block) coordinate: inline runs across, block runs
// down.
type Point struct {
	Inline, Block Au
}

// Size is an (inline, block) extent pair on the same axes.
type Size struct {
	Inline, Block Au
}

// band covers the vertical interval [start, start+length) over which both
// intrusions are constant. The start is the band's key in the map.
// Intrusions are stored negated: a left margin intruded by 200 units has
// left == -200, so that inlineSize + left + right is the width still
// available.
type band struct {
	left, right Au
	length      Au
}

func (b band) availableSize(inlineSize Au) Au {
	return inlineSize + b.left + b.right
}

func (b band) get(side Side) Au {
	if side == Left {
		return b.left
	}
	return b.right
}

func (b *band) set(side Side, v Au) {
	if side == Left {
		b.left = v
	} else {
		b.right = v
	}
}

// Exclusions is the band partition for one layout pass. Bands are pairwise
// disjoint and contiguous, the first starts at 0, and exactly one is
// open-ended. Not safe for concurrent use: even Place restructures the
// underlying tree.
type Exclusions struct {
	bands      splay.SplayMap[Au, band]
	inlineSize Au
}

// New returns an Exclusions for a horizontal extent of inlineSize with a
// single unbounded band and no intrusion on either side.
func New(inlineSize Au) *Exclusions {
	e := &Exclusions{inlineSize: inlineSize}
	e.bands.Insert(0, band{length: MaxAu})
	return e
}

// InlineSize returns the fixed horizontal extent.
func (e *Exclusions) InlineSize() Au {
	return e.inlineSize
}

// Place returns the origin of the lowest position where a box of the given
// size fits flush against the given margin. It never mutates the band
// table (though the search restructures the tree). Finding no band is an
// invariant violation: the unbounded band always qualifies.
func (e *Exclusions) Place(side Side, size Size) Point {
	found, ok := e.bands.LowerBoundWith(func(start Au, b band) int {
		return compareInlineSize(start, b, size, e.inlineSize)
	})
	if !ok {
		panic("exclusions: Place found no band")
	}
	blockPosition := found.Key
	b, ok := e.bands.Get(blockPosition)
	if !ok {
		panic("exclusions: band table lost a band")
	}
	var inlinePosition Au
	switch side {
	case Left:
		inlinePosition = -b.left
	case Right:
		inlinePosition = e.inlineSize + b.right - size.Inline
	}
	return Point{Inline: inlinePosition, Block: blockPosition}
}

// compareInlineSize drives the lower-bound search for Place. A band the box
// fits into reports <0 so that an even lower qualifying band is preferred,
// with this one as the fallback. A band the box does not fit into sends the
// search onward, except for the unbounded band, which always terminates it.
func compareInlineSize(start Au, b band, size Size, inlineSize Au) int {
	switch {
	case size.Inline <= b.availableSize(inlineSize):
		return -1
	case start+b.length == MaxAu:
		return 0
	default:
		return 1
	}
}

// Exclude registers an obstacle of the given extent whose lower edge sits at
// size.Block, anchored to side. Obstacles with a zero dimension are
// ignored. The band containing size.Block is split there, then the new
// intrusion propagates band by band toward lower block positions for as
// long as it is at least as deep as what each band already records,
// stopping at the first band that intrudes strictly more. There is no other
// upper bound on the walk: once applied, an intrusion is monotonic.
func (e *Exclusions) Exclude(side Side, size Size) {
	if size.Inline == 0 || size.Block == 0 {
		return
	}

	e.split(size)

	last := size.Block
	for {
		entry := e.bands.GetWith(func(start Au, b band) int {
			switch {
			case last <= start:
				return -1
			case last > start+b.length:
				return 1
			default:
				return 0
			}
		})
		if entry == nil {
			break
		}
		b := &entry.Value
		if -b.get(side) > size.Inline {
			break
		}
		b.set(side, -size.Inline)
		// TODO(band merge): adjacent bands with equal intrusions could
		// be coalesced here.
		last = entry.Key
	}
}

// split cuts the band containing size.Block in two at that position. The
// new lower band inherits the intrusions, keeping the horizontal profile
// unchanged until the new intrusion is applied.
func (e *Exclusions) split(size Size) {
	upper := e.bands.GetWith(func(start Au, b band) int {
		switch {
		case size.Block < start:
			return -1
		case size.Block >= start+b.length:
			return 1
		default:
			return 0
		}
	})
	if upper == nil {
		panic("exclusions: split found no band containing the position")
	}
	floor := upper.Key + upper.Value.length
	upper.Value.length = size.Block - upper.Key
	lower := band{
		left:   upper.Value.left,
		right:  upper.Value.right,
		length: floor - size.Block,
	}
	e.bands.Insert(size.Block, lower)
}

func (e *Exclusions) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Exclusions(inlineSize=%d): bands:\n", e.inlineSize)
	it := e.bands.Clone().Drain()
	for {
		entry, ok := it.Next()
		if !ok {
			break
		}
		fmt.Fprintf(&b, "    [%d, %d) left=%d right=%d\n",
			entry.Key, entry.Key+entry.Value.length, entry.Value.left, entry.Value.right)
	}
	return b.String()
}
