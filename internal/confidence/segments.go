package confidence

// Segment is a maximal run of consecutive entries sharing one chain id.
type Segment struct {
	ChainID string
	Start   int
	Len     int
}

// End returns the index one past the segment's last entry.
func (s Segment) End() int { return s.Start + s.Len }

// Segments splits ids into contiguous runs in sequence order. A chain id that
// reappears after another chain starts a new segment.
func Segments(ids []string) []Segment {
	var segs []Segment
	for i, id := range ids {
		if n := len(segs); n > 0 && segs[n-1].ChainID == id {
			segs[n-1].Len++
			continue
		}
		segs = append(segs, Segment{ChainID: id, Start: i, Len: 1})
	}
	return segs
}

// Boundaries returns the offsets at which a new segment begins, excluding the
// start of the first segment. K segments yield K-1 offsets.
func Boundaries(segs []Segment) []int {
	if len(segs) < 2 {
		return nil
	}
	out := make([]int, 0, len(segs)-1)
	for _, s := range segs[1:] {
		out = append(out, s.Start)
	}
	return out
}
