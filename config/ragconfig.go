package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// RAGConfig holds the configuration for the legal-statute retrieval core:
// model identifiers, collection/connection names, and the tunable constants
// that govern fusion, filtering, and feature toggles.
type RAGConfig struct {
	DenseModel          string  `mapstructure:"dense_model"`
	DenseDims           int     `mapstructure:"dense_dims"`
	SparseModel         string  `mapstructure:"sparse_model"`
	LLMProvider         string  `mapstructure:"llm_provider"`
	LLMModel            string  `mapstructure:"llm_model"`
	LLMAPIKey           string  `mapstructure:"llm_api_key"`
	LLMBaseURL          string  `mapstructure:"llm_base_url"`
	LLMTemperature      float64 `mapstructure:"llm_temperature"`
	LLMMaxTokens        int     `mapstructure:"llm_max_tokens"`
	VectorCollection    string  `mapstructure:"vector_collection"`
	HybridCollection    string  `mapstructure:"hybrid_collection"`
	GraphConnection     string  `mapstructure:"graph_connection"`
	GraphWeight         float64 `mapstructure:"graph_weight"`
	MinScoreThreshold   float64 `mapstructure:"min_score_threshold"`
	RetrievalMultiplier float64 `mapstructure:"retrieval_multiplier"`
	UseHybridSearch     bool    `mapstructure:"use_hybrid_search"`
	RerankerEnabled     bool    `mapstructure:"reranker_enabled"`
	CORSOrigins         []string `mapstructure:"cors_origins"`
	APIPrefix           string  `mapstructure:"api_prefix"`

	// LangfusePublicKey, LangfuseSecretKey, and LangfuseBaseURL configure
	// the Langfuse trace exporter. The exporter is only constructed when
	// both keys are non-empty.
	LangfusePublicKey string `mapstructure:"langfuse_public_key"`
	LangfuseSecretKey string `mapstructure:"langfuse_secret_key"`
	LangfuseBaseURL   string `mapstructure:"langfuse_base_url"`
}

// LoadRAGConfig reads RAGConfig from a config file (if present) and
// environment variables (prefix BELUGA_RAG_): a "." in a key maps to "_" in
// the environment variable, and a missing config file is not an error.
func LoadRAGConfig(configPaths ...string) (*RAGConfig, error) {
	v := viper.New()

	v.SetDefault("dense_model", "text-embedding-3-small")
	v.SetDefault("dense_dims", 1536)
	v.SetDefault("sparse_model", "bm25")
	v.SetDefault("llm_provider", "openai")
	v.SetDefault("llm_model", "gpt-4o")
	v.SetDefault("llm_base_url", "")
	v.SetDefault("llm_temperature", 0.2)
	v.SetDefault("llm_max_tokens", 1024)
	v.SetDefault("vector_collection", "statutes_dense")
	v.SetDefault("hybrid_collection", "statutes_hybrid")
	v.SetDefault("graph_connection", "bolt://localhost:7687")
	v.SetDefault("graph_weight", 1.2)
	v.SetDefault("min_score_threshold", 0.25)
	v.SetDefault("retrieval_multiplier", 3.0)
	v.SetDefault("use_hybrid_search", true)
	v.SetDefault("reranker_enabled", true)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("api_prefix", "/api/v1")

	v.SetConfigName("rag")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/beluga-ai/")
	v.AddConfigPath("$HOME/.beluga-ai")
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading rag config file: %w", err)
		}
	}

	v.SetEnvPrefix("BELUGA_RAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg RAGConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode rag config into struct: %w", err)
	}

	return &cfg, nil
}
