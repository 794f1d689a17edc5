package reconcile

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// ErrInjected is returned by fault injectors that simulate an outage
var ErrInjected = errors.New("simulated service failure")

// FaultInjector decides whether a call fails before reaching the service.
// For bulk calls Inject is asked once per candidate id.
type FaultInjector interface {
	Inject(op string, id types.CandidateID) error
}

// NoFaults never injects a failure
type NoFaults struct{}

func (NoFaults) Inject(string, types.CandidateID) error { return nil }

// FailCandidates fails every call touching one of the listed candidates
type FailCandidates map[types.CandidateID]error

func (f FailCandidates) Inject(_ string, id types.CandidateID) error {
	if err, ok := f[id]; ok {
		if err == nil {
			return ErrInjected
		}
		return err
	}
	return nil
}

// FailOps fails every call of the listed operations
type FailOps map[string]error

func (f FailOps) Inject(op string, _ types.CandidateID) error {
	if err, ok := f[op]; ok {
		if err == nil {
			return ErrInjected
		}
		return err
	}
	return nil
}

// RandomFaults fails a fraction of calls. It is seeded so simulations
// are reproducible.
type RandomFaults struct {
	mu   sync.Mutex
	rate float64
	rng  *rand.Rand
}

// NewRandomFaults fails calls with probability rate
func NewRandomFaults(rate float64, seed uint64) *RandomFaults {
	return &RandomFaults{rate: rate, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandomFaults) Inject(string, types.CandidateID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rng.Float64() < r.rate {
		return ErrInjected
	}
	return nil
}
