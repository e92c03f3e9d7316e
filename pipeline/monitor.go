package pipeline

import "github.com/poiesic/eventide/core"

// TurnMonitor provides hooks to observe a single pipeline turn.
// Implement this interface to track intermediate stages during a turn.
type TurnMonitor interface {
	Start(userText string)
	AfterClassification(qc *core.QueryClassification)
	AfterRetrieval(results []*core.SearchResult)
	Finish(response string)
}

// noopMonitor is a no-op implementation of TurnMonitor
type noopMonitor struct{}

var _ TurnMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                               {}
func (n *noopMonitor) AfterClassification(_ *core.QueryClassification) {}
func (n *noopMonitor) AfterRetrieval(_ []*core.SearchResult)        {}
func (n *noopMonitor) Finish(_ string)                              {}
