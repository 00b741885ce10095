// Package legalrag implements the retrieval-and-composition core for a
// Japanese legal-statute question-answering system: query preparation and
// translation, entity-based routing, knowledge-graph lookup, dense/hybrid
// vector retrieval, fusion and filtering, optional cross-encoder reranking,
// citation-numbered context building, and a final generator call.
package legalrag

import "github.com/lookatitude/beluga-ai/core"

// Domain-specific error codes, added alongside core's existing
// rate_limit/timeout/provider_unavailable codes (which already cover the
// Transient class for this domain).
const (
	// ErrCodeInputInvalid marks the Input error class: empty query,
	// out-of-range top_k.
	ErrCodeInputInvalid core.ErrorCode = "input_invalid"

	// ErrCodeRetrievalEmpty marks the Fatal class: every retriever returned
	// nothing and the top-3 fallback was also empty.
	ErrCodeRetrievalEmpty core.ErrorCode = "retrieval_empty"

	// ErrCodeDegraded tags a Degradation event for structured logging. It is
	// never returned to the caller as a failure — the pipeline proceeds with
	// reduced capability instead.
	ErrCodeDegraded core.ErrorCode = "degraded"

	// ErrCodeCancelled wraps context.Canceled in the pipeline's own error
	// taxonomy so callers can distinguish cancellation from other Fatal
	// errors without depending on the context package directly.
	ErrCodeCancelled core.ErrorCode = "cancelled"

	// ErrCodeFatalGeneration marks a generator call that failed after
	// exhausting retries.
	ErrCodeFatalGeneration core.ErrorCode = "fatal_generation"
)
