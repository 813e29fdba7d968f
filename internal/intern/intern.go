// Package intern maintains a process-wide interned path pool shared across
// loaded project models. Models acquire a handle on load and must release it
// explicitly on their shutdown path; release is deterministic and
// best-effort, never surfacing failures to the caller.
package intern

import "sync"

type entry struct {
	s string
	n int
}

// pool is the process-wide table keyed by string value.
var (
	mu   sync.Mutex
	pool = map[string]*entry{}
)

// Handle tracks the strings one owner interned. Release them by calling
// Release exactly once; further use of the handle is a no-op.
type Handle struct {
	owned    []string
	released bool
}

// Acquire creates a handle for a new owner.
func Acquire() *Handle {
	return &Handle{}
}

// Intern returns the pooled copy of s, recording it against the handle.
func (h *Handle) Intern(s string) string {
	if h.released {
		return s
	}
	mu.Lock()
	defer mu.Unlock()
	e, ok := pool[s]
	if !ok {
		e = &entry{s: s}
		pool[s] = e
	}
	e.n++
	h.owned = append(h.owned, e.s)
	return e.s
}

// Release returns the handle's strings to the pool, dropping entries whose
// count reaches zero. Failures (including panics from a corrupted pool) are
// swallowed: release is best-effort and must not disturb shutdown.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	defer func() {
		_ = recover()
	}()
	mu.Lock()
	defer mu.Unlock()
	for _, s := range h.owned {
		if e, ok := pool[s]; ok {
			e.n--
			if e.n <= 0 {
				delete(pool, s)
			}
		}
	}
	h.owned = nil
}

// Size reports the number of distinct pooled strings.
func Size() int {
	mu.Lock()
	defer mu.Unlock()
	return len(pool)
}
