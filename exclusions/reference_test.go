package exclusions

// refExclusions is a brute-force model of the same band partition, kept as a
// sorted slice with linear scans. The randomized test compares the real
// structure against it operation by operation.
type refBand struct {
	start, length Au
	left, right   Au
}

type refExclusions struct {
	inlineSize Au
	bands      []refBand
}

func newRef(inlineSize Au) *refExclusions {
	return &refExclusions{
		inlineSize: inlineSize,
		bands:      []refBand{{length: MaxAu}},
	}
}

func (r *refExclusions) spans() []bandSpan {
	out := make([]bandSpan, len(r.bands))
	for i, b := range r.bands {
		out[i] = bandSpan{
			start: b.start,
			end:   b.start + b.length,
			left:  b.left,
			right: b.right,
		}
	}
	return out
}

func (r *refExclusions) place(side Side, size Size) Point {
	for i, b := range r.bands {
		avail := r.inlineSize + b.left + b.right
		if size.Inline <= avail || i == len(r.bands)-1 {
			if side == Left {
				return Point{Inline: -b.left, Block: b.start}
			}
			return Point{Inline: r.inlineSize + b.right - size.Inline, Block: b.start}
		}
	}
	panic("reference: no band qualified")
}

func (r *refExclusions) exclude(side Side, size Size) {
	if size.Inline == 0 || size.Block == 0 {
		return
	}

	i := r.containing(size.Block)
	if b := r.bands[i]; size.Block > b.start {
		floor := b.start + b.length
		r.bands[i].length = size.Block - b.start
		nb := refBand{
			start:  size.Block,
			length: floor - size.Block,
			left:   b.left,
			right:  b.right,
		}
		r.bands = append(r.bands, refBand{})
		copy(r.bands[i+2:], r.bands[i+1:])
		r.bands[i+1] = nb
	}

	last := size.Block
	for {
		j := -1
		for idx, b := range r.bands {
			if b.start < last && last <= b.start+b.length {
				j = idx
				break
			}
		}
		if j < 0 {
			break
		}
		cur := r.bands[j].left
		if side == Right {
			cur = r.bands[j].right
		}
		if -cur > size.Inline {
			break
		}
		if side == Left {
			r.bands[j].left = -size.Inline
		} else {
			r.bands[j].right = -size.Inline
		}
		last = r.bands[j].start
	}
}

func (r *refExclusions) containing(pos Au) int {
	for i, b := range r.bands {
		if pos >= b.start && pos < b.start+b.length {
			return i
		}
	}
	panic("reference: no band contains position")
}
