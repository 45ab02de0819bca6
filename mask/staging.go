package mask

// Staging is a CPU-resident buffer holding pixel data before it is
// uploaded to a texture. The zero value is an empty, released buffer.
type Staging struct {
	buf []byte
}

// Ensure makes sure the buffer holds exactly n bytes and returns it.
// An existing buffer of the right size is reused; any other buffer is
// dropped and a new zeroed one allocated.
func (s *Staging) Ensure(n int) []byte {
	if s.buf != nil && len(s.buf) == n {
		return s.buf
	}
	s.buf = make([]byte, n)
	return s.buf
}

// Bytes returns the buffer, or nil if it is released.
func (s *Staging) Bytes() []byte {
	return s.buf
}

// Allocated reports whether the buffer currently holds memory.
func (s *Staging) Allocated() bool {
	return s.buf != nil
}

// Len returns the buffer size in bytes.
func (s *Staging) Len() int {
	return len(s.buf)
}

// Release drops the buffer.
func (s *Staging) Release() {
	s.buf = nil
}
