package status

import (
	"github.com/scijava/status.scijava.org/pkg/github"
	"github.com/scijava/status.scijava.org/pkg/maven"
)

// brokenScore marks components whose status data is missing entirely;
// the maintainer needs to fix the component before scores mean anything.
const brokenScore = 9999999999999

// ReviewScore scores PRs needing attention (review and/or merge):
// 1000 per open non-draft PR.
func ReviewScore(st *github.Stats) int64 {
	if st == nil {
		return 0
	}
	return 1000 * int64(st.PRs-st.Drafts)
}

// SupportScore scores issues needing response: open issues minus questions,
// weighted up for bugs and for issues with no milestone.
func SupportScore(st *github.Stats) int64 {
	if st == nil {
		return 0
	}
	open := int64(st.Count - st.Label("question"))
	return 10*open + 100*int64(st.Label("bug")) + 25*int64(st.Milestone("none"))
}

// MaintenanceScore scores how badly a release needs to be cut: the number
// of wall-clock seconds between the last vetted and last updated times.
// Timestamps convert to real times here, unlike the staleness decision,
// which deliberately stays in raw integer arithmetic.
func MaintenanceScore(lastVetted, lastUpdated maven.Timestamp) int64 {
	if lastVetted.IsZero() {
		return brokenScore
	}
	if lastUpdated.IsZero() {
		return 0
	}
	delta := lastUpdated.Time().Sub(lastVetted.Time())
	if delta < 0 {
		return 0
	}
	return int64(delta.Seconds())
}

// DeveloperScore totals the scores relevant to a developer's roles on a
// component. Returns false when the developer holds no responsible role.
// Ordering incentive: address PRs first, then cut releases, then bump
// versions, then answer remaining issues.
func DeveloperScore(roles []string, st *github.Stats, lastVetted, lastUpdated maven.Timestamp) (int64, bool) {
	var isReviewer, isSupport, isMaintainer bool
	for _, role := range roles {
		switch role {
		case "reviewer":
			isReviewer = true
		case "support":
			isSupport = true
		case "maintainer":
			isMaintainer = true
		}
	}
	if !isReviewer && !isSupport && !isMaintainer {
		return 0, false
	}
	var score int64
	if isReviewer {
		score += ReviewScore(st)
	}
	if isSupport {
		score += SupportScore(st)
	}
	if isMaintainer {
		score += MaintenanceScore(lastVetted, lastUpdated)
	}
	return score, true
}
