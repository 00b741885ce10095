package schema

// Document is a retrievable unit of text with its metadata, embedding, and
// a retrieval score. It is the common currency of the rag/* packages:
// embedders, vector stores, and retrievers all speak Document.
type Document struct {
	ID        string
	Content   string
	Metadata  map[string]any
	Score     float64
	Embedding []float32
}
