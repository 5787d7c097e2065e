package ipgraph

import "sort"

// TypeSequence is the registry type tag of SequenceGroupNode.
const TypeSequence = "Sequence"

func init() {
	RegisterNodeType(TypeSequence, func() Node { return NewSequenceGroupNode() })
}

// EDLEntry maps a global timeline frame to a source clip range. Entries
// are kept sorted ascending by Frame.
type EDLEntry struct {
	// Frame is the global frame at which the entry takes effect.
	Frame int
	// Source is the input index the entry selects.
	Source int
	// In and Out are the source clip in- and out-points.
	In  int
	Out int
}

// SequenceGroupNode plays its inputs back to back. Without an edit
// decision list each input contributes a fixed duration and the sequence
// loops over the total; with an EDL set, the EDL takes precedence
// unconditionally.
type SequenceGroupNode struct {
	GroupNode

	durations []int
	edl       []EDLEntry
}

// NewSequenceGroupNode creates an empty sequence.
func NewSequenceGroupNode() *SequenceGroupNode {
	n := &SequenceGroupNode{}
	n.initGroup(n, TypeSequence, n.activeInput)
	return n
}

// SetDurations sets the per-input frame counts used by duration-based
// playback. Inputs beyond the slice contribute one frame each.
func (n *SequenceGroupNode) SetDurations(durations []int) {
	n.durations = append([]int(nil), durations...)
	n.MarkDirty()
}

// Durations returns the configured per-input frame counts.
func (n *SequenceGroupNode) Durations() []int {
	return append([]int(nil), n.durations...)
}

// SetEDL replaces the edit decision list wholesale. Entries are sorted
// ascending by global frame; an empty slice clears the EDL and restores
// duration-based playback.
func (n *SequenceGroupNode) SetEDL(entries []EDLEntry) {
	n.edl = append([]EDLEntry(nil), entries...)
	sort.SliceStable(n.edl, func(i, j int) bool { return n.edl[i].Frame < n.edl[j].Frame })
	n.MarkDirty()
}

// SetEDLArrays sets the EDL from parallel arrays of global frames, source
// indices, in-points and out-points. Shorter arrays pad with zero.
func (n *SequenceGroupNode) SetEDLArrays(frames, sources, ins, outs []int) {
	entries := make([]EDLEntry, len(frames))
	for i, f := range frames {
		entries[i].Frame = f
		if i < len(sources) {
			entries[i].Source = sources[i]
		}
		if i < len(ins) {
			entries[i].In = ins[i]
		}
		if i < len(outs) {
			entries[i].Out = outs[i]
		}
	}
	n.SetEDL(entries)
}

// EDL returns a copy of the current edit decision list.
func (n *SequenceGroupNode) EDL() []EDLEntry {
	return append([]EDLEntry(nil), n.edl...)
}

// TotalDuration returns the summed input durations used by duration-based
// playback. Inputs without an explicit duration count one frame.
func (n *SequenceGroupNode) TotalDuration() int {
	total := 0
	for i := range n.inputs {
		total += n.duration(i)
	}
	return total
}

func (n *SequenceGroupNode) duration(i int) int {
	if i < len(n.durations) && n.durations[i] > 0 {
		return n.durations[i]
	}
	return 1
}

func (n *SequenceGroupNode) activeInput(ctx *EvalContext) int {
	idx, _ := n.Select(ctx.Frame)
	return idx
}

// Select resolves a global frame to the active input index and the local
// frame within that input. With an EDL present, the entry with the largest
// Frame not exceeding the global frame wins and the local frame is the
// entry's in-point plus the offset past the entry. Without one, the frame
// wraps over the total duration and the input whose cumulative offset is
// the greatest below the wrapped frame is selected.
func (n *SequenceGroupNode) Select(frame int) (input, localFrame int) {
	if len(n.edl) > 0 {
		return n.selectEDL(frame)
	}
	total := n.TotalDuration()
	if total <= 0 {
		return 0, frame
	}
	wrapped := ((frame-1)%total+total)%total + 1

	offset := 0
	for i := range n.inputs {
		d := n.duration(i)
		if wrapped <= offset+d {
			return i, wrapped - offset
		}
		offset += d
	}
	return 0, wrapped
}

func (n *SequenceGroupNode) selectEDL(frame int) (input, localFrame int) {
	entry := n.edl[0]
	for _, e := range n.edl {
		if e.Frame > frame {
			break
		}
		entry = e
	}
	return entry.Source, entry.In + (frame - entry.Frame)
}
