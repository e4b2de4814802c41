// Package status decides, per BOM component, whether a release needs to be
// cut and whether the BOM pin needs a bump.
package status

import (
	"github.com/scijava/status.scijava.org/pkg/maven"
)

// Action is the recommended maintainer action for a component.
type Action int

const (
	ActionCut  Action = iota // a release is needed
	ActionBump               // the BOM needs to point at the newest release
	ActionNone
)

func (a Action) String() string {
	switch a {
	case ActionCut:
		return "Cut"
	case ActionBump:
		return "Bump"
	default:
		return "None"
	}
}

// SortKey orders actions by urgency for table sorting.
func (a Action) SortKey() int {
	switch a {
	case ActionCut:
		return 1
	case ActionBump:
		return 2
	default:
		return 3
	}
}

// Vetting records how a component's last-vetted time was established.
type Vetting int

const (
	// VettingNone means no release timestamp and no override: status unknown.
	VettingNone Vetting = iota
	// VettingRelease means vetted by the release artifact, no override on file.
	VettingRelease
	// VettingOverride means a manual timestamps.txt entry dominates.
	VettingOverride
	// VettingStaleOverride means an override is on file but the release
	// artifact is newer.
	VettingStaleOverride
)

// Signals are the per-component inputs to the decision.
type Signals struct {
	BOMVersion    string
	NewestRelease string

	// ReleaseTime is when the newest release was deployed (0 if unknown).
	ReleaseTime maven.Timestamp
	// LastSnapshot is when the newest pre-release snapshot was deployed
	// (0 if unknown). May be ahead of or behind the release.
	LastSnapshot maven.Timestamp
	// Override is the manual last-vetted timestamp (0 if none recorded).
	Override maven.Timestamp

	// HasURL reports whether a source-hosting URL is known; without one
	// there is nowhere to cut a release from.
	HasURL bool
}

// Status is the decision for one component.
type Status struct {
	BOMOK      bool
	ReleaseOK  bool
	LastVetted maven.Timestamp
	Vetting    Vetting
	Action     Action

	// Known is false when LastVetted is 0, i.e. the component was never
	// released and never manually vetted. Such rows render as unknown
	// rather than claiming any action.
	Known bool
}

// Evaluate combines the gathered signals into status flags and an action.
//
// Each component is "vetted" either by being released or by a manual
// timestamps.txt entry. The goal is to detect whether the component changed
// since the most recent release (not the release listed in the BOM): a
// snapshot deployed more than StaleThreshold after the last vetted time
// means a new release is needed.
func Evaluate(sig Signals) Status {
	var s Status

	s.BOMOK = sig.BOMVersion == sig.NewestRelease
	s.LastVetted = maven.MaxTimestamp(sig.ReleaseTime, sig.Override)
	s.ReleaseOK = sig.LastSnapshot-s.LastVetted <= maven.StaleThreshold

	if sig.LastSnapshot-sig.Override < 0 {
		// Manually vetted more recently than the last snapshot deploy;
		// the version-string comparison no longer matters.
		s.BOMOK = true
	}

	switch {
	case !sig.Override.IsZero() && s.LastVetted == sig.Override:
		s.Vetting = VettingOverride
	case sig.Override.IsZero() && !s.LastVetted.IsZero():
		s.Vetting = VettingRelease
	case !s.LastVetted.IsZero():
		s.Vetting = VettingStaleOverride
	default:
		s.Vetting = VettingNone
	}

	s.Known = !s.LastVetted.IsZero()
	if !s.Known {
		// Data unavailable; claiming Cut or Bump here would be spurious.
		s.Action = ActionNone
		return s
	}

	switch {
	case sig.HasURL && !s.ReleaseOK:
		s.Action = ActionCut
	case !s.BOMOK:
		s.Action = ActionBump
	default:
		s.Action = ActionNone
	}
	return s
}
