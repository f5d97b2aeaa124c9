package session

import (
	"errors"
	"sync/atomic"
)

// ErrStale is returned by a refresh whose result was dropped because a
// newer refresh started in the meantime.
var ErrStale = errors.New("result superseded by a newer refresh")

// sequencer hands out increasing tickets. Only the holder of the latest
// ticket may commit.
type sequencer struct {
	latest atomic.Uint64
}

func (s *sequencer) next() uint64 {
	return s.latest.Add(1)
}

func (s *sequencer) isLatest(ticket uint64) bool {
	return s.latest.Load() == ticket
}
