// Package pipeline implements the Orchestrator: the state machine that
// drives a single chat request through preparation, routing, concurrent
// graph/vector retrieval, fusion and filtering, optional reranking, context
// building, and generation.
package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lookatitude/beluga-ai/core"
	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/legalrag/candidate"
	"github.com/lookatitude/beluga-ai/legalrag/contextbuilder"
	"github.com/lookatitude/beluga-ai/legalrag/fusion"
	"github.com/lookatitude/beluga-ai/legalrag/graph"
	"github.com/lookatitude/beluga-ai/legalrag/query"
	"github.com/lookatitude/beluga-ai/legalrag/rerank"
	"github.com/lookatitude/beluga-ai/legalrag/retrieval"
	"github.com/lookatitude/beluga-ai/legalrag/retry"
	"github.com/lookatitude/beluga-ai/legalrag/router"
	"github.com/lookatitude/beluga-ai/o11y"
)

// state names the orchestrator's state machine positions, emitted only as
// structured log events: PREPARED -> ROUTED -> RETRIEVING -> FUSED ->
// (RERANKED)? -> GENERATED -> DONE, or FAILED from any non-terminal state.
type state string

const (
	statePrepared   state = "PREPARED"
	stateRouted     state = "ROUTED"
	stateRetrieving state = "RETRIEVING"
	stateFused      state = "FUSED"
	stateReranked   state = "RERANKED"
	stateGenerated  state = "GENERATED"
	stateDone       state = "DONE"
)

const (
	// graphSearchLimit bounds how many hits a single graph keyword/related
	// query returns.
	graphSearchLimit = 10
	// graphTraversalDepth bounds FindRelated's multi-hop traversal.
	graphTraversalDepth = 2
)

// Pipeline drives the retrieval-and-composition pipeline over a Services
// handle container. A Pipeline is safe for concurrent use by multiple
// requests: no request mutates shared state, and no locks are held across
// suspension points.
type Pipeline struct {
	services *Services
	vector   *retrieval.Retriever
}

// New constructs a Pipeline over services.
func New(services *Services) *Pipeline {
	var vecOpts []retrieval.Option
	if services.HybridStore != nil && services.SparseEmbedder != nil {
		vecOpts = append(vecOpts, retrieval.WithHybrid(services.HybridStore, services.SparseEmbedder))
	}
	return &Pipeline{
		services: services,
		vector:   retrieval.New(services.Embedder, services.VectorStore, vecOpts...),
	}
}

// Chat runs a single request through the full pipeline, returning the
// generated Answer or a classified error (Input, Fatal, or Cancelled;
// Transient errors are retried internally and only surface as Fatal once
// the retry budget is exhausted).
func (p *Pipeline) Chat(ctx context.Context, rawQuery string, opts ...ChatOption) (*Answer, error) {
	start := time.Now()
	logger := o11y.FromContext(ctx)

	options := newOptions(opts...)
	if err := options.validate(rawQuery); err != nil {
		return nil, err
	}
	cfg := p.services.Config

	plan := query.Prepare(ctx, rawQuery, options.UseMultiQuery.resolve(true), p.services.Translator)
	logger.Debug(ctx, "pipeline.state", "state", statePrepared, "search_texts", len(plan.SearchTexts))

	routed := router.Route(plan.SearchTexts[0])
	logger.Debug(ctx, "pipeline.state", "state", stateRouted, "query_type", routed.Type)

	useGraph := options.UseGraph.resolve(routed.UseGraph)
	useHybrid := options.UseHybrid.resolve(cfg.UseHybridSearch)

	filters := options.Filters
	if filters == nil {
		filters = plan.FilterHints
	}

	vectorK := int(float64(options.TopK) * cfg.RetrievalMultiplier)
	if vectorK < options.TopK {
		vectorK = options.TopK
	}

	logger.Debug(ctx, "pipeline.state", "state", stateRetrieving)
	graphResults, vectorCandidates, err := p.retrieve(ctx, routed, plan, filters, vectorK, useGraph, useHybrid)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newCancelledError(ctx.Err())
		}
		return nil, core.NewError("legalrag.pipeline.chat", core.ErrProviderDown, "vector retrieval failed after retries", err)
	}
	if ctx.Err() != nil {
		return nil, newCancelledError(ctx.Err())
	}

	graphCandidates := fusion.PromoteGraphResults(graphResults, cfg.GraphWeight)
	merged := fusion.Merge(graphCandidates, vectorCandidates)
	if len(merged) == 0 {
		return nil, newRetrievalEmptyError()
	}
	filtered := fusion.Filter(merged, cfg.MinScoreThreshold)
	logger.Debug(ctx, "pipeline.state", "state", stateFused, "candidates", len(filtered))

	final := p.applyReranker(ctx, logger, plan.SearchTexts[0], filtered, options.TopK)

	_, renderedContext := contextbuilder.Build(final)

	var answerText string
	genErr := retry.Do(ctx, func(innerCtx context.Context) error {
		var genInnerErr error
		answerText, genInnerErr = p.services.Generator.Generate(innerCtx, rawQuery, renderedContext)
		return genInnerErr
	})
	if genErr != nil {
		if ctx.Err() != nil {
			return nil, newCancelledError(ctx.Err())
		}
		return nil, genErr
	}
	logger.Debug(ctx, "pipeline.state", "state", stateGenerated)

	answer := &Answer{
		AnswerText: answerText,
		Sources:    sourcesFromCandidates(final),
		Query:      rawQuery,
		ElapsedMs:  time.Since(start).Milliseconds(),
	}
	logger.Debug(ctx, "pipeline.state", "state", stateDone, "elapsed_ms", answer.ElapsedMs)
	return answer, nil
}

// retrieve runs graph and vector retrieval concurrently, per §5: a
// graph-search task and a vector-search task run in parallel. A vector
// retrieval error (after retry.Do exhausts its budget) is the only error
// this method returns; graph failures are never fatal and are absorbed by
// legalrag/graph's own degrade-to-empty semantics.
func (p *Pipeline) retrieve(ctx context.Context, routed router.RoutedQuery, plan query.SearchPlan, filters map[string]any, vectorK int, useGraph, useHybrid bool) ([]legalrag.GraphResult, []candidate.Candidate, error) {
	var graphResults []legalrag.GraphResult
	var vectorCandidates []candidate.Candidate

	g, gctx := errgroup.WithContext(ctx)

	if useGraph {
		g.Go(func() error {
			graphResults = p.retrieveGraph(gctx, routed)
			return nil
		})
	}

	if routed.UseVector {
		g.Go(func() error {
			return retry.Do(gctx, func(innerCtx context.Context) error {
				var vecErr error
				vectorCandidates, vecErr = p.vector.Retrieve(innerCtx, plan.SearchTexts, vectorK, filters, useHybrid)
				return vecErr
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return graphResults, vectorCandidates, nil
}

// retrieveGraph resolves entity-anchored graph hits for routed: a keyword
// search per extracted entity, plus (for MULTI_HOP queries) a bounded
// REFERENCES traversal from each hit.
func (p *Pipeline) retrieveGraph(ctx context.Context, routed router.RoutedQuery) []legalrag.GraphResult {
	store := p.services.graphStoreOnce(ctx)
	retriever := graph.New(store)
	if !retriever.Available() || len(routed.Entities) == 0 {
		return nil
	}

	var all []legalrag.GraphResult
	for _, entity := range routed.Entities {
		hits := retriever.KeywordSearch(ctx, entity.Text, graphSearchLimit)
		all = append(all, hits...)

		if routed.Type != router.MultiHop {
			continue
		}
		for _, hit := range hits {
			related := retriever.FindRelated(ctx, hit.LawID, hit.ArticleNum, graphTraversalDepth, graphSearchLimit)
			all = append(all, related...)
		}
	}
	return all
}

// applyReranker reranks filtered when a reranker is configured and enabled;
// otherwise (or on reranker failure) it truncates filtered to top_k,
// preserving fused order.
func (p *Pipeline) applyReranker(ctx context.Context, logger *o11y.Logger, primaryQuery string, filtered []candidate.Candidate, topK int) []candidate.Candidate {
	if !p.services.Config.RerankerEnabled {
		return truncateCandidates(filtered, topK)
	}
	encoder := p.services.rerankEncoderOnce(ctx)
	if encoder == nil {
		return truncateCandidates(filtered, topK)
	}

	reranked, err := rerank.New(encoder).Rerank(ctx, primaryQuery, filtered, topK)
	if err != nil {
		logger.Warn(ctx, "reranker failed, using fused order", "error", err)
		return truncateCandidates(filtered, topK)
	}
	logger.Debug(ctx, "pipeline.state", "state", stateReranked)
	return reranked
}

func truncateCandidates(candidates []candidate.Candidate, k int) []candidate.Candidate {
	if k > 0 && len(candidates) > k {
		return candidates[:k]
	}
	return candidates
}
