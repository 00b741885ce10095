package pipeline

import (
	"context"
	"sync"

	"github.com/lookatitude/beluga-ai/config"
	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/legalrag/generator"
	"github.com/lookatitude/beluga-ai/llm"
	"github.com/lookatitude/beluga-ai/o11y"
	"github.com/lookatitude/beluga-ai/rag/embedding"
	"github.com/lookatitude/beluga-ai/rag/vectorstore"
)

// Services is the process-wide handle container the Pipeline is built
// over: the required embedder, dense vector store, and generator, plus the
// optional hybrid search, graph, reranker, and translator capabilities.
// Optional handles that require their own client construction (graph,
// reranker) are supplied as factories and loaded lazily, once, on first use,
// per the shared-resource model: a load failure degrades that capability to
// unavailable for the remainder of the process rather than retrying.
type Services struct {
	Embedder       embedding.Embedder
	VectorStore    vectorstore.VectorStore
	HybridStore    legalrag.HybridVectorStore
	SparseEmbedder legalrag.SparseEmbeddingProvider
	Translator     legalrag.Translator
	Generator      *generator.Generator
	Config         *config.RAGConfig

	// GraphFactory, if set, constructs the GraphStore on first use.
	GraphFactory func() (legalrag.GraphStore, error)
	// RerankerFactory, if set, constructs the CrossEncoder on first use.
	RerankerFactory func() (legalrag.CrossEncoder, error)

	graphOnce  sync.Once
	graphStore legalrag.GraphStore

	rerankOnce    sync.Once
	rerankEncoder legalrag.CrossEncoder
}

// NewServices constructs a Services with the required capabilities. Optional
// capabilities are attached with ServiceOptions.
func NewServices(model llm.ChatModel, embedder embedding.Embedder, store vectorstore.VectorStore, cfg *config.RAGConfig, opts ...ServiceOption) *Services {
	s := &Services{
		Embedder:    embedder,
		VectorStore: store,
		Config:      cfg,
		Generator: generator.New(model,
			generator.WithTemperature(cfg.LLMTemperature),
			generator.WithMaxTokens(cfg.LLMMaxTokens),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServiceOption attaches an optional capability to a Services.
type ServiceOption func(*Services)

// WithHybridSearch attaches the hybrid vector store and sparse embedder
// needed for dense+sparse search.
func WithHybridSearch(store legalrag.HybridVectorStore, sparse legalrag.SparseEmbeddingProvider) ServiceOption {
	return func(s *Services) {
		s.HybridStore = store
		s.SparseEmbedder = sparse
	}
}

// WithTranslator attaches a Translator for query translation and expansion.
func WithTranslator(t legalrag.Translator) ServiceOption {
	return func(s *Services) { s.Translator = t }
}

// WithGraphFactory attaches a lazily-constructed GraphStore.
func WithGraphFactory(factory func() (legalrag.GraphStore, error)) ServiceOption {
	return func(s *Services) { s.GraphFactory = factory }
}

// WithRerankerFactory attaches a lazily-constructed CrossEncoder.
func WithRerankerFactory(factory func() (legalrag.CrossEncoder, error)) ServiceOption {
	return func(s *Services) { s.RerankerFactory = factory }
}

// WithTraceExporter attaches an o11y.TraceExporter to the generator, so every
// generation call is reported to an LLM observability backend (Langfuse,
// Phoenix, Opik, LangSmith) in addition to the structured o11y logger.
func WithTraceExporter(exp o11y.TraceExporter) ServiceOption {
	return func(s *Services) { generator.WithTraceExporter(exp)(s.Generator) }
}

// graphStoreOnce returns the GraphStore, constructing it on first call. A
// construction failure is logged and permanently disables graph retrieval
// for the process (the sync.Once fires exactly once regardless of outcome).
func (s *Services) graphStoreOnce(ctx context.Context) legalrag.GraphStore {
	if s.GraphFactory == nil {
		return nil
	}
	s.graphOnce.Do(func() {
		store, err := s.GraphFactory()
		if err != nil {
			o11y.FromContext(ctx).Warn(ctx, "graph store failed to load, graph retrieval disabled for this process", "error", err)
			return
		}
		s.graphStore = store
	})
	return s.graphStore
}

// rerankEncoderOnce returns the CrossEncoder, constructing it on first call.
// A construction failure is logged and permanently disables reranking for
// the process.
func (s *Services) rerankEncoderOnce(ctx context.Context) legalrag.CrossEncoder {
	if s.RerankerFactory == nil {
		return nil
	}
	s.rerankOnce.Do(func() {
		encoder, err := s.RerankerFactory()
		if err != nil {
			o11y.FromContext(ctx).Warn(ctx, "reranker failed to load, reranking disabled for this process", "error", err)
			return
		}
		s.rerankEncoder = encoder
	})
	return s.rerankEncoder
}

// HealthRegistry builds an o11y.HealthRegistry that probes the embedder and
// vector store this Services was built with, plus the graph store and
// reranker if they have already been constructed. It reflects the process's
// current degradation state rather than forcing lazy capabilities to load.
func (s *Services) HealthRegistry() *o11y.HealthRegistry {
	reg := o11y.NewHealthRegistry()
	reg.Register("embedder", o11y.HealthCheckerFunc(func(ctx context.Context) o11y.HealthResult {
		if _, err := s.Embedder.EmbedSingle(ctx, "health check"); err != nil {
			return o11y.HealthResult{Status: o11y.Unhealthy, Message: err.Error()}
		}
		return o11y.HealthResult{Status: o11y.Healthy}
	}))
	reg.Register("vector_store", o11y.HealthCheckerFunc(func(ctx context.Context) o11y.HealthResult {
		if _, err := s.VectorStore.Search(ctx, []float32{0}, 1); err != nil {
			return o11y.HealthResult{Status: o11y.Unhealthy, Message: err.Error()}
		}
		return o11y.HealthResult{Status: o11y.Healthy}
	}))
	if s.graphStore != nil {
		reg.Register("graph_store", o11y.HealthCheckerFunc(func(ctx context.Context) o11y.HealthResult {
			return o11y.HealthResult{Status: o11y.Healthy}
		}))
	} else if s.GraphFactory != nil {
		reg.Register("graph_store", o11y.HealthCheckerFunc(func(ctx context.Context) o11y.HealthResult {
			return o11y.HealthResult{Status: o11y.Degraded, Message: "graph store unavailable, queries fall back to vector-only retrieval"}
		}))
	}
	if s.RerankerFactory != nil && s.rerankEncoder == nil {
		reg.Register("reranker", o11y.HealthCheckerFunc(func(ctx context.Context) o11y.HealthResult {
			return o11y.HealthResult{Status: o11y.Degraded, Message: "reranker unavailable, candidates are served unreranked"}
		}))
	}
	return reg
}
