package logging

// unwrapper extends 16 bit RTP sequence numbers to 64 bit, tolerating
// reordering of up to half the sequence number space.
type unwrapper struct {
	started bool
	last    int64
}

func (u *unwrapper) Unwrap(seq uint16) int64 {
	if !u.started {
		u.started = true
		u.last = int64(seq)
		return u.last
	}
	delta := int64(int16(seq - uint16(u.last)))
	u.last += delta
	return u.last
}
