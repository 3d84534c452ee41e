package recommend

import (
	"math/rand"
	"sync"
	"time"
)

// Picker chooses an index in [0, n). Implementations must be safe for
// concurrent use when shared across goroutines.
type Picker interface {
	Intn(n int) int
}

// lockedRand guards a *rand.Rand, which is not safe for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandPicker returns a Picker backed by math/rand. A zero seed uses the
// current time.
func NewRandPicker(seed int64) Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // not security sensitive
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// pick draws one label uniformly. An empty slice yields "".
func pick(p Picker, labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return labels[p.Intn(len(labels))]
}
