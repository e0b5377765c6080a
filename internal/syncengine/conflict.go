package syncengine

import "sync"

// ConflictRequest identifies one conflicting file awaiting a decision.
type ConflictRequest struct {
	System     string
	File       string
	LocalSize  int64
	DeviceSize int64
}

// Resolution is the user's answer to a conflict prompt.
type Resolution string

// Conflict resolutions.
const (
	// ResolveOverwrite overwrites this file only.
	ResolveOverwrite Resolution = "overwrite"
	// ResolveSkip skips this file only.
	ResolveSkip Resolution = "skip"
	// ResolveOverwriteAll overwrites this file and every remaining conflict.
	ResolveOverwriteAll Resolution = "overwrite-all"
	// ResolveSkipAll skips this file and every remaining conflict.
	ResolveSkipAll Resolution = "skip-all"
)

// ConflictPrompter resolves conflicts interactively. Ask blocks the transfer
// loop until a resolution arrives; at most one request is outstanding at a
// time - no other transfer work proceeds while a conflict is open.
type ConflictPrompter interface {
	Ask(req ConflictRequest) Resolution
}

// PrompterFunc adapts a function to the ConflictPrompter interface.
type PrompterFunc func(req ConflictRequest) Resolution

// Ask implements ConflictPrompter.
func (f PrompterFunc) Ask(req ConflictRequest) Resolution {
	return f(req)
}

// ChannelPrompter bridges conflict prompts across goroutines: the transfer
// loop posts a request and blocks until Resolve is called from the UI side.
// At most one request is outstanding at a time; a second Ask blocks until
// the first is resolved.
type ChannelPrompter struct {
	mu        sync.Mutex
	requests  chan ConflictRequest
	responses chan Resolution
}

// NewChannelPrompter creates a ChannelPrompter.
func NewChannelPrompter() *ChannelPrompter {
	return &ChannelPrompter{
		requests:  make(chan ConflictRequest),
		responses: make(chan Resolution),
	}
}

// Ask implements ConflictPrompter. It publishes the request and blocks until
// a resolution arrives.
func (p *ChannelPrompter) Ask(req ConflictRequest) Resolution {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests <- req

	return <-p.responses
}

// Requests returns the channel the UI side receives prompts on.
func (p *ChannelPrompter) Requests() <-chan ConflictRequest {
	return p.requests
}

// Resolve answers the outstanding prompt and unblocks the transfer loop.
func (p *ChannelPrompter) Resolve(res Resolution) {
	p.responses <- res
}
