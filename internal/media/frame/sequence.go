package frame

// Sequence is an ordered list of frames in display order. An empty sequence is
// the single failure signal seen by transports.
type Sequence []*Frame

// Len returns the number of frames
func (s Sequence) Len() int {
	return len(s)
}

// Empty reports whether the sequence holds no frames
func (s Sequence) Empty() bool {
	return len(s) == 0
}

// First returns the first frame, or nil when the sequence is empty
func (s Sequence) First() *Frame {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}
