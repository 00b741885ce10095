package pipeline

import (
	"fmt"

	"github.com/lookatitude/beluga-ai/config"
	"github.com/lookatitude/beluga-ai/llm"
	_ "github.com/lookatitude/beluga-ai/llm/providers/openai"
	"github.com/lookatitude/beluga-ai/o11y"
	"github.com/lookatitude/beluga-ai/o11y/providers/langfuse"
	"github.com/lookatitude/beluga-ai/rag/embedding"
	"github.com/lookatitude/beluga-ai/rag/vectorstore"
)

// NewLLM constructs the generator's ChatModel from cfg via the llm registry.
// The openai provider is registered as a side effect of importing this
// package; other providers can be made available the same way without
// changing this function.
func NewLLM(cfg *config.RAGConfig) (llm.ChatModel, error) {
	provider := cfg.LLMProvider
	if provider == "" {
		provider = "openai"
	}
	model, err := llm.New(provider, config.ProviderConfig{
		Provider: provider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: construct llm provider %q: %w", provider, err)
	}
	return llm.ApplyMiddleware(model, llm.WithLogging(o11y.NewLogger().Slog())), nil
}

// NewTraceExporter builds the Langfuse trace exporter from cfg. It returns a
// nil exporter (and no error) when Langfuse credentials are not configured,
// so generation runs without trace export rather than failing to start.
func NewTraceExporter(cfg *config.RAGConfig) (o11y.TraceExporter, error) {
	if cfg.LangfusePublicKey == "" || cfg.LangfuseSecretKey == "" {
		return nil, nil
	}
	opts := []langfuse.Option{
		langfuse.WithPublicKey(cfg.LangfusePublicKey),
		langfuse.WithSecretKey(cfg.LangfuseSecretKey),
	}
	if cfg.LangfuseBaseURL != "" {
		opts = append(opts, langfuse.WithBaseURL(cfg.LangfuseBaseURL))
	}
	exp, err := langfuse.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: construct langfuse exporter: %w", err)
	}
	return exp, nil
}

// NewServicesFromConfig builds a Services using the LLM provider and trace
// exporter selected by cfg, on top of a caller-supplied embedder and vector
// store (whose concrete backends are chosen by the caller, e.g. Qdrant).
func NewServicesFromConfig(cfg *config.RAGConfig, embedder embedding.Embedder, store vectorstore.VectorStore, opts ...ServiceOption) (*Services, error) {
	model, err := NewLLM(cfg)
	if err != nil {
		return nil, err
	}
	exporter, err := NewTraceExporter(cfg)
	if err != nil {
		return nil, err
	}
	if exporter != nil {
		opts = append(opts, WithTraceExporter(exporter))
	}
	return NewServices(model, embedder, store, cfg, opts...), nil
}
