// Package config provides provider configuration, the legal-statute
// retrieval core's own RAGConfig, and file watching for the Beluga AI
// framework.
//
// # Provider Configuration
//
// [ProviderConfig] holds common configuration for any external provider
// (LLM, embedding, vector store, etc.), including provider name, API key,
// model identifier, base URL, timeout, and a flexible Options map for
// provider-specific settings. [GetOption] retrieves typed values from the
// Options map:
//
//	temp, ok := config.GetOption[float64](cfg, "temperature")
//
// # RAG Configuration
//
// [RAGConfig] holds the tunable settings for the legal-statute retrieval
// core: embedding model identifiers, the LLM provider/model/credentials used
// by the generator, vector and graph store connection names, and the fusion,
// filtering, and feature-toggle constants. [LoadRAGConfig] reads it from an
// optional rag.yaml, looked up in ".", "/etc/beluga-ai/", "$HOME/.beluga-ai"
// and any extra directories passed as arguments, plus BELUGA_RAG_-prefixed
// environment variables via Viper:
//
//	cfg, err := config.LoadRAGConfig("/etc/myapp")
//
// # File Watching
//
// The [Watcher] interface abstracts configuration change detection.
// [FileWatcher] polls a file at regular intervals using SHA-256 content
// hashing, invoking a callback when changes are detected:
//
//	watcher := config.NewFileWatcher("config.json", 5*time.Second)
//	err := watcher.Watch(ctx, func(newConfig any) {
//	    data := newConfig.([]byte)
//	    // re-parse and apply configuration
//	})
package config
