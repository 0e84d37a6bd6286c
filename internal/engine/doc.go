// Package engine coordinates the playground's operations against the local
// LLM runtime. It is structured into small files by concern:
//
//   - engine.go: core Engine type, constructor, simple getters.
//   - config.go: EngineConfig and package defaults; New applies defaults.
//   - types.go: internal state types (modelSlot, session).
//   - errors.go: error types and helpers (IsTooBusy, IsIndexEmpty).
//   - admission.go: per-model queueing and generation admission.
//   - prompt.go: the retrieval prompt template.
//   - ask.go: retrieval-augmented question answering (streaming).
//   - chat.go: session chat (streaming).
//   - pull.go: model pull progress proxying.
//   - status.go: Status/Ready reporting.
//   - metrics.go: prometheus counters for domain operations.
//
// The engine never loads model weights: inference, embeddings, and pulls are
// delegated to the external runtime over its HTTP API. External packages
// should treat this package as the orchestration layer and use public
// methods only.
package engine
