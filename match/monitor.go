package match

import "github.com/poiesic/talentmatch/core"

// MatchMonitor provides hooks to observe the matching pipeline.
// Implement this interface to track intermediate steps and results during a run.
type MatchMonitor interface {
	Start(externalID string)
	AfterFieldSearch(field core.FieldName, candidates []*core.MatchCandidate)
	AfterFusion(candidates []*core.MatchCandidate)
	AfterHydration(candidates []*core.MatchCandidate)
	EvaluationFallback(err error)
	Finish(report *core.MatchReport)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                              {}
func (n *noopMonitor) AfterFieldSearch(_ core.FieldName, _ []*core.MatchCandidate) {}
func (n *noopMonitor) AfterFusion(_ []*core.MatchCandidate)                        {}
func (n *noopMonitor) AfterHydration(_ []*core.MatchCandidate)                     {}
func (n *noopMonitor) EvaluationFallback(_ error)                                  {}
func (n *noopMonitor) Finish(_ *core.MatchReport)                                  {}
