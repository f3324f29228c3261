package framework

import (
	"strconv"
	"sync"
	"time"
)

// TokenSource produces the uniqueness tokens embedded in generated test data (email
// addresses, user names, station names) so that repeated runs against the same deployment
// do not collide.
type TokenSource interface {
	NextToken() string
}

// ClockTokens derives tokens from the current time in milliseconds. Tokens from one
// ClockTokens are strictly increasing even if the clock is read twice within a millisecond.
type ClockTokens struct {
	Now  func() time.Time
	last int64
	lock sync.Mutex
}

func (c *ClockTokens) NextToken() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	n := now().UnixMilli()
	if n <= c.last {
		n = c.last + 1
	}
	c.last = n
	return strconv.FormatInt(n, 10)
}

// SequenceTokens returns Prefix followed by 1, 2, 3... It is meant for tests.
type SequenceTokens struct {
	Prefix string
	n      int
}

func (s *SequenceTokens) NextToken() string {
	s.n++
	return s.Prefix + strconv.Itoa(s.n)
}
