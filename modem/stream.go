package modem

import "io"

// stream gives the response waiter a non-blocking byte view of a
// Transport: available reports whether a byte can be taken right now.
type stream struct {
	r   io.Reader
	buf []byte
	pos int
	n   int
	err error
}

func newStream(r io.Reader) *stream {
	return &stream{r: r, buf: make([]byte, 256)}
}

func (s *stream) available() bool {
	if s.pos < s.n {
		return true
	}
	if s.err != nil {
		return false
	}
	n, err := s.r.Read(s.buf)
	s.pos, s.n = 0, n
	if err != nil {
		s.err = err
	}
	return n > 0
}

// readByte is only valid after available returned true.
func (s *stream) readByte() byte {
	c := s.buf[s.pos]
	s.pos++
	return c
}
