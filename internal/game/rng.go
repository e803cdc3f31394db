package game

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// RNG is the combat-seeded deterministic source. Its full generator
// state travels with the serialized combat so replays stay reproducible.
type RNG struct {
	pcg *rand.PCG
	r   *rand.Rand
}

func NewRNG(seed uint64) *RNG {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &RNG{pcg: pcg, r: rand.New(pcg)}
}

func (g *RNG) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	return g.r.IntN(n)
}

func (g *RNG) Shuffle(n int, swap func(i, j int)) { g.r.Shuffle(n, swap) }

func (g *RNG) MarshalJSON() ([]byte, error) {
	b, err := g.pcg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("rng: %w", err)
	}
	return json.Marshal(b)
}

func (g *RNG) UnmarshalJSON(data []byte) error {
	var b []byte
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("rng: %w", err)
	}
	pcg := &rand.PCG{}
	if err := pcg.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("rng: %w", err)
	}
	g.pcg = pcg
	g.r = rand.New(pcg)
	return nil
}
