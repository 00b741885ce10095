// Package generator implements the Generator Adapter: a single call to a
// generative model with a system prompt specifying output style and
// citation requirements, and a user message combining the numbered context
// and the original query.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/lookatitude/beluga-ai/core"
	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/legalrag/retry"
	"github.com/lookatitude/beluga-ai/llm"
	"github.com/lookatitude/beluga-ai/o11y"
	"github.com/lookatitude/beluga-ai/schema"
)

const defaultSystemPrompt = `You are a legal research assistant answering questions about Japanese statutes.
Answer only from the provided numbered context. Cite sources using their [i] citation index.
If the context does not contain the answer, say so rather than guessing.`

// Generator wraps an llm.ChatModel to produce the final answer from a
// numbered context and the original query.
type Generator struct {
	model        llm.ChatModel
	systemPrompt string
	temperature  float64
	maxTokens    int
	exporter     o11y.TraceExporter
}

// Option configures a Generator.
type Option func(*Generator)

// WithSystemPrompt overrides the default legal-citation system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(g *Generator) { g.systemPrompt = prompt }
}

// WithTemperature sets the generation temperature (from configuration).
func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

// WithMaxTokens sets the maximum generated tokens (from configuration).
func WithMaxTokens(n int) Option {
	return func(g *Generator) { g.maxTokens = n }
}

// WithTraceExporter attaches an o11y.TraceExporter (e.g. Langfuse, Phoenix,
// Opik, LangSmith) that receives a record of every generation call. Export
// failures are swallowed: exporting is best-effort and must never affect the
// answer returned to the caller.
func WithTraceExporter(exp o11y.TraceExporter) Option {
	return func(g *Generator) { g.exporter = exp }
}

// ModelID returns the identifier of the underlying model.
func (g *Generator) ModelID() string { return g.model.ModelID() }

// New constructs a Generator over model.
func New(model llm.ChatModel, opts ...Option) *Generator {
	g := &Generator{model: model, systemPrompt: defaultSystemPrompt, temperature: 0.2, maxTokens: 1024}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate calls the model with a system prompt, the numbered context, and
// the original query, returning the generated answer text. Retryable model
// errors (per core.IsRetryable) are retried through retry.Do; the final
// error is wrapped as a core.Error tagged ErrCodeFatalGeneration.
func (g *Generator) Generate(ctx context.Context, originalQuery, renderedContext string) (string, error) {
	userMessage := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", renderedContext, originalQuery)

	msgs := []schema.Message{
		schema.NewSystemMessage(g.systemPrompt),
		schema.NewHumanMessage(userMessage),
	}

	opts := []llm.GenerateOption{llm.WithMaxTokens(g.maxTokens)}
	if g.temperature > 0 {
		opts = append(opts, llm.WithTemperature(g.temperature))
	}

	start := time.Now()
	var resp *schema.AIMessage
	err := retry.Do(ctx, func(ctx context.Context) error {
		var callErr error
		resp, callErr = g.model.Generate(ctx, msgs, opts...)
		return callErr
	})
	g.export(ctx, msgs, resp, time.Since(start), err)
	if err != nil {
		return "", core.NewError("legalrag.generator.generate", legalrag.ErrCodeFatalGeneration, "generator call failed", err)
	}
	return resp.Text(), nil
}

// export reports the call to the attached TraceExporter, if any. It never
// returns an error and must not be allowed to affect Generate's result.
func (g *Generator) export(ctx context.Context, msgs []schema.Message, resp *schema.AIMessage, elapsed time.Duration, callErr error) {
	if g.exporter == nil {
		return
	}
	data := o11y.LLMCallData{
		Model:    g.model.ModelID(),
		Duration: elapsed,
		Messages: messagesToMaps(msgs),
	}
	if callErr != nil {
		data.Error = callErr.Error()
	} else if resp != nil {
		data.Response = map[string]any{"text": resp.Text()}
	}
	_ = g.exporter.ExportLLMCall(ctx, data)
}

func messagesToMaps(msgs []schema.Message) []map[string]any {
	out := make([]map[string]any, len(msgs))
	for i, m := range msgs {
		out[i] = map[string]any{"role": string(m.GetRole()), "content": m.Text()}
	}
	return out
}
