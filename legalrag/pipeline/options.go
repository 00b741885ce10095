package pipeline

// Toggle is a tri-state feature flag: a caller-supplied option can enable or
// disable a capability explicitly, or leave it at Default to let the
// pipeline's own routing/configuration decide.
type Toggle int

const (
	Default Toggle = iota
	Enabled
	Disabled
)

// resolve applies a Toggle over a computed default: Enabled/Disabled always
// win; Default defers to def.
func (t Toggle) resolve(def bool) bool {
	switch t {
	case Enabled:
		return true
	case Disabled:
		return false
	default:
		return def
	}
}

const (
	defaultTopK = 10
	minTopK     = 1
	maxTopK     = 50
)

// Options holds the inbound chat options: top_k, metadata filters, and the
// three tri-state feature toggles (use_graph, use_hybrid, use_multi_query).
// Unknown options are impossible by construction in Go (there is no map of
// arbitrary keys to ignore); every recognized option has a typed field.
type Options struct {
	TopK          int
	Filters       map[string]any
	UseGraph      Toggle
	UseHybrid     Toggle
	UseMultiQuery Toggle
}

// ChatOption configures a single Chat call.
type ChatOption func(*Options)

// WithTopK overrides the default top_k (10). A value outside [1,50],
// including an explicit 0, is validated as an Input error by Chat.
func WithTopK(k int) ChatOption {
	return func(o *Options) { o.TopK = k }
}

// WithFilters sets metadata filters forwarded to the vector store.
func WithFilters(filters map[string]any) ChatOption {
	return func(o *Options) { o.Filters = filters }
}

// WithUseGraph forces graph retrieval on or off, overriding the router's
// classification for this request.
func WithUseGraph(t Toggle) ChatOption {
	return func(o *Options) { o.UseGraph = t }
}

// WithUseHybrid forces hybrid (dense+sparse) search on or off, overriding
// RAGConfig.UseHybridSearch for this request.
func WithUseHybrid(t Toggle) ChatOption {
	return func(o *Options) { o.UseHybrid = t }
}

// WithUseMultiQuery forces query expansion on or off for this request.
func WithUseMultiQuery(t Toggle) ChatOption {
	return func(o *Options) { o.UseMultiQuery = t }
}

func newOptions(opts ...ChatOption) Options {
	o := Options{TopK: defaultTopK}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) validate(query string) error {
	if query == "" {
		return newInputError("query must not be empty")
	}
	if o.TopK < minTopK || o.TopK > maxTopK {
		return newInputError("top_k must be between 1 and 50")
	}
	return nil
}
