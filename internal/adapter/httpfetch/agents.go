package httpfetch

import (
	"math/rand"
	"sync"
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
}

// Agents hands out user agent strings. A fixed agent is always returned
// as is; otherwise one is picked at random from the pool.
type Agents struct {
	fixed string
	pool  []string

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewAgents returns Agents that always use fixed, or rotate through the
// built-in pool when fixed is empty.
func NewAgents(fixed string, seed int64) *Agents {
	return &Agents{
		fixed: fixed,
		pool:  defaultUserAgents,
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

// Next returns the user agent for the next request.
func (a *Agents) Next() string {
	if a.fixed != "" {
		return a.fixed
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pool[a.rnd.Intn(len(a.pool))]
}
