package search

import (
	"github.com/poiesic/firmdex/core"
	"github.com/poiesic/firmdex/index"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterEmbedding(dimension int)
	AfterVectorSearch(hits []index.Hit)
	AfterFilter(positions []int)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                    {}
func (n *noopMonitor) AfterEmbedding(_ int)              {}
func (n *noopMonitor) AfterVectorSearch(_ []index.Hit)   {}
func (n *noopMonitor) AfterFilter(_ []int)               {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)     {}
