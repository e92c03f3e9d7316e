// Package openai provides AI service implementations backed by
// OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM, ...).
//
// The QueryClassifier calls a chat model in JSON mode with a low temperature
// and parses the structured classification response, repairing and retrying
// on malformed output. The Embedder wraps the langchaingo embeddings client.
package openai
