// Package openaicompat provides a shared ChatModel implementation for providers
// that use OpenAI-compatible APIs. The pack's distillation carried this as a
// shared foundation for a dozen-plus thin wrapper provider packages; this
// repository keeps only the one provider (openai) the legal-statute
// generator actually constructs, but leaves the conversion/streaming logic
// general so a second OpenAI-compatible provider (e.g. an Azure OpenAI or a
// self-hosted vLLM endpoint) could register against it without duplicating
// this file.
//
// This is an internal package and is not part of the public API.
//
// # Model
//
// The [Model] type implements the llm.ChatModel interface using the openai-go SDK.
// Providers create a Model by calling [New] or [NewWithOptions] with their specific
// base URL and API key, then register it in the llm registry:
//
//	func init() {
//	    llm.Register("openai", func(cfg config.ProviderConfig) (llm.ChatModel, error) {
//	        return openaicompat.New(cfg)
//	    })
//	}
//
// # Message Conversion
//
// [ConvertMessages] translates Beluga schema.Message types (SystemMessage,
// HumanMessage, AIMessage, ToolMessage) into OpenAI API format. It supports
// multimodal content including text and image parts.
//
// [ConvertResponse] translates OpenAI ChatCompletion responses back into
// Beluga schema.AIMessage, including tool calls and usage statistics.
//
// # Tool Conversion
//
// [ConvertTools] translates Beluga schema.ToolDefinition slices into OpenAI
// tool parameters for function calling.
//
// # Streaming
//
// [StreamToSeq] converts an openai-go SSE stream into a Beluga
// iter.Seq2[schema.StreamChunk, error] iterator, handling text deltas,
// per-chunk tool call deltas (not merged across chunks), finish reasons, and
// token usage.
package openaicompat
