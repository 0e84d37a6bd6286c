package engine

import (
	"time"

	"playd/pkg/types"
)

// modelSlot holds the queueing primitives for one model.
type modelSlot struct {
	model    string
	lastUsed time.Time
	genCh    chan struct{} // size 1: single in-flight generation
	queueCh  chan struct{} // buffered: queue slots
}

// session is an in-memory chat conversation.
type session struct {
	id       string
	model    string
	history  []types.ChatMessage
	lastUsed time.Time
}
