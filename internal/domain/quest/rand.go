package quest

import "math/rand"

type systemSource struct{}

func (systemSource) Intn(n int) int {
	return rand.Intn(n)
}

// SystemSource is the process-level generator, used only at the outermost
// boundary when no explicit source is supplied.
func SystemSource() RandSource {
	return systemSource{}
}

// SeededSource builds an isolated generator for deterministic replay. It
// never touches the process-level generator's state.
func SeededSource(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}
