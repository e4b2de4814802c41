package report

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/scijava/status.scijava.org/pkg/mapfile"
	"github.com/scijava/status.scijava.org/pkg/projects"
)

// buildBadge renders the CI badge cell. A per-slug override from
// ci-badges.txt wins; GitHub-hosted projects fall back to the conventional
// Actions workflow badge; everything else gets a dash.
func buildBadge(url string, overrides mapfile.Map) g.Node {
	slug := projects.Slug(url)
	if slug == "" {
		return Td(g.Text("-"))
	}
	if override, ok := overrides.Get(slug); ok {
		return Td(Class("badge"), g.Raw(override))
	}
	actions := "https://github.com/" + slug + "/actions"
	return Td(Class("badge"),
		A(Href(actions),
			Img(Src(actions+"/workflows/build-main.yml/badge.svg"))))
}

// qualityBadge renders the code quality badge cell via the CodeFactor
// convention URL for GitHub-hosted projects.
func qualityBadge(url string) g.Node {
	slug := projects.Slug(url)
	if slug == "" {
		return Td(g.Text("-"))
	}
	repo := "https://www.codefactor.io/repository/github/" + slug
	return Td(Class("badge"),
		A(Href(repo),
			Img(Src(repo+"/badge"))))
}
