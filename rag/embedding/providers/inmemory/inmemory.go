// Package inmemory provides a deterministic, dependency-free Embedder
// useful for tests and offline development. It has no notion of semantic
// similarity; it only guarantees that identical text maps to identical
// unit vectors.
package inmemory

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/lookatitude/beluga-ai/config"
	"github.com/lookatitude/beluga-ai/rag/embedding"
)

const defaultDimensions = 128

func init() {
	embedding.Register("inmemory", func(cfg config.ProviderConfig) (embedding.Embedder, error) {
		return New(cfg)
	})
}

// Embedder hashes text into a deterministic, unit-normalized vector.
type Embedder struct {
	dimensions int
}

// New constructs an in-memory Embedder. Options["dimensions"] overrides the
// default of 128; non-positive values fall back to the default.
func New(cfg config.ProviderConfig) (*Embedder, error) {
	dims := defaultDimensions
	if v, ok := config.GetOption[float64](cfg, "dimensions"); ok && v > 0 {
		dims = int(v)
	}
	return &Embedder{dimensions: dims}, nil
}

// Dimensions implements embedding.Embedder.
func (e *Embedder) Dimensions() int { return e.dimensions }

// Embed implements embedding.Embedder.
func (e *Embedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.embedOne(t)
	}
	return out, nil
}

// EmbedSingle implements embedding.Embedder.
func (e *Embedder) EmbedSingle(_ context.Context, text string) ([]float32, error) {
	return e.embedOne(text), nil
}

// embedOne derives a unit vector from text by hashing a per-dimension
// counter alongside the text's digest, then L2-normalizing the result.
func (e *Embedder) embedOne(text string) []float32 {
	seed := sha256.Sum256([]byte(text))
	buf := make([]byte, len(seed)+4)
	copy(buf, seed[:])

	vec := make([]float32, e.dimensions)
	var sumSquares float64
	for i := 0; i < e.dimensions; i++ {
		binary.BigEndian.PutUint32(buf[len(seed):], uint32(i))
		h := sha256.Sum256(buf)
		u := binary.BigEndian.Uint64(h[:8])
		f := (float64(u)/float64(math.MaxUint64))*2 - 1
		vec[i] = float32(f)
		sumSquares += f * f
	}

	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
