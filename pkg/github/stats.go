package github

// Stats summarizes the open issues of one repository.
type Stats struct {
	Org  string `json:"org"`
	Repo string `json:"repo"`

	Count  int `json:"count"`
	PRs    int `json:"prs"`
	Drafts int `json:"drafts"`

	Labels     map[string]int `json:"labels"`
	Milestones map[string]int `json:"milestones"`
	Assignees  map[string]int `json:"assignees"`

	Oldest  string `json:"oldest,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// Label returns a label count, 0 when the label is unused.
func (s *Stats) Label(name string) int {
	if s == nil {
		return 0
	}
	return s.Labels[name]
}

// Milestone returns a milestone count; issues without a milestone are
// counted under "none".
func (s *Stats) Milestone(name string) int {
	if s == nil {
		return 0
	}
	return s.Milestones[name]
}
