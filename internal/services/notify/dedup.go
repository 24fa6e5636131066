package notify

import (
	"sync"

	"github.com/puentelabs/puente/internal/domain"
)

// DedupSink wraps a sink and suppresses repeats of the same message. The
// first occurrence is always forwarded, then every repeatEvery-th one.
// Entries not repeated for expireAfter other notifications are forgotten so
// the message fires again next time it shows up.
type DedupSink struct {
	next        Sink
	repeatEvery int
	expireAfter int

	mu    sync.Mutex
	cache map[string][2]int // message -> [times seen, notifications since last seen]
}

// NewDedupSink creates a DedupSink over next.
func NewDedupSink(next Sink, repeatEvery, expireAfter int) *DedupSink {
	if repeatEvery < 1 {
		repeatEvery = 1
	}
	if expireAfter < 1 {
		expireAfter = 10
	}
	return &DedupSink{
		next:        next,
		repeatEvery: repeatEvery,
		expireAfter: expireAfter,
		cache:       make(map[string][2]int),
	}
}

// Notify forwards the notification unless it is a suppressed repeat.
func (s *DedupSink) Notify(n domain.Notification) {
	key := n.String()

	s.mu.Lock()
	counters, seen := s.cache[key]
	if seen {
		counters[0]++
		counters[1] = 0
		s.cache[key] = counters
	} else {
		s.cache[key] = [2]int{0, 0}
	}
	forward := !seen || counters[0]%s.repeatEvery == 0
	s.expireOthers(key)
	s.mu.Unlock()

	if forward {
		s.next.Notify(n)
	}
}

// expireOthers ages every other cache entry, dropping the stale ones.
// Callers must hold mu.
func (s *DedupSink) expireOthers(current string) {
	for key, counters := range s.cache {
		if key == current {
			continue
		}
		counters[1]++
		if counters[1] >= s.expireAfter {
			delete(s.cache, key)
			continue
		}
		s.cache[key] = counters
	}
}
