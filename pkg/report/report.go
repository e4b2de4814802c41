// Package report renders the component status table as a self-contained
// HTML document.
package report

import (
	"bytes"
	"regexp"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" // Using . import for convenience with html tags

	"github.com/scijava/status.scijava.org/pkg/mapfile"
	"github.com/scijava/status.scijava.org/pkg/maven"
	"github.com/scijava/status.scijava.org/pkg/status"
)

// Glyphs used by the status columns.
const (
	checkMark    = "&#x2714;"
	xMark        = "&#x2715;"
	questionMark = "&#10067;"
)

// Row is everything the renderer needs for one component.
type Row struct {
	Coordinate    maven.Coordinate
	URL           string // source hosting, "" when unknown
	BOMVersion    string
	NewestRelease string
	LastUpdated   maven.Timestamp // newest snapshot deploy time
	Status        status.Status
}

// Report renders rows into the status table document.
type Report struct {
	Title          string
	RepoBase       string      // repository UI base for version search links
	BadgeOverrides mapfile.Map // GitHub slug -> badge HTML
	Footer         string      // raw HTML appended after the table
}

var nonAlnum = regexp.MustCompile(`[^0-9A-Za-z]`)

func cssClass(s string) string {
	return nonAlnum.ReplaceAllString(s, "-")
}

// HTML renders the full report document. Output is deterministic for
// unchanged rows, so re-running against unchanged metadata produces a
// byte-identical document.
func (r *Report) HTML(rows []Row) ([]byte, error) {
	title := r.Title
	if title == "" {
		title = "SciJava software status"
	}

	doc := g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>\n"),
		HTML(
			Head(
				TitleEl(g.Text(title)),
				Link(Type("text/css"), Rel("stylesheet"), Href("status.css")),
				Link(Rel("icon"), Type("image/png"), Href("favicon.png")),
				Script(Type("text/javascript"), Src("sorttable.js")),
				Script(Type("text/javascript"), Src("sortable-badges.js")),
			),
			Body(g.Attr("onload", "makeBadgesSortable()"),
				Span(ID("forkongithub"),
					A(Href("https://github.com/scijava/status.scijava.org"), g.Text("Fix me on GitHub"))),
				Table(Class("sortable"),
					Tr(
						Th(g.Text("Group")),
						Th(g.Text("Artifact")),
						Th(g.Text("BOM")),
						Th(g.Text("Newest")),
						Th(g.Text("OK")),
						Th(g.Text("Last vetted")),
						Th(g.Text("Last updated")),
						Th(g.Text("OK")),
						Th(g.Text("Action")),
						Th(g.Text("Build")),
						Th(g.Text("Quality")),
					),
					g.Group(g.Map(rows, r.row)),
				),
				g.Raw(r.Footer),
			),
		),
	})

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// releaseLink links a version to the repository's artifact search.
func (r *Report) releaseLink(coord maven.Coordinate, version string) g.Node {
	if version == "" {
		return g.Text("-")
	}
	return A(
		Href(r.RepoBase+"/#nexus-search;gav~"+coord.GroupID+"~"+coord.ArtifactID+"~"+version+"~~"),
		g.Text(version),
	)
}

func (r *Report) row(row Row) g.Node {
	st := row.Status

	bomStatus := "bom-ok"
	bomGlyph := checkMark
	if !st.BOMOK {
		bomStatus = "bom-behind"
		bomGlyph = xMark
	}
	releaseStatus := "release-ok"
	releaseGlyph := checkMark
	if !st.ReleaseOK {
		// A SNAPSHOT was deployed meaningfully after the last vetted time.
		releaseStatus = "release-needed"
		releaseGlyph = xMark
	}
	if !st.Known {
		bomStatus = "bom-unknown"
		releaseStatus = "release-unknown"
		bomGlyph = questionMark
		releaseGlyph = questionMark
	}

	rowClass := "g-" + cssClass(row.Coordinate.GroupID) +
		" a-" + cssClass(row.Coordinate.ArtifactID) +
		" " + bomStatus + " " + releaseStatus

	artifact := g.Node(g.Text(row.Coordinate.ArtifactID))
	if row.URL != "" {
		artifact = A(Href(row.URL), g.Text(row.Coordinate.ArtifactID))
	}

	return Tr(Class(rowClass),
		Td(g.Text(row.Coordinate.GroupID)),
		Td(artifact),
		Td(r.releaseLink(row.Coordinate, row.BOMVersion)),
		Td(r.releaseLink(row.Coordinate, row.NewestRelease)),
		Td(g.Raw(bomGlyph)),
		r.vettedCell(st),
		timestampCell(row.LastUpdated),
		Td(g.Raw(releaseGlyph)),
		Td(g.Attr("sorttable_customkey", strconv.Itoa(st.Action.SortKey())),
			g.Text(st.Action.String())),
		buildBadge(row.URL, r.BadgeOverrides),
		qualityBadge(row.URL),
	)
}

// vettedCell renders the last-vetted timestamp, styled by how the vetting
// was established.
func (r *Report) vettedCell(st status.Status) g.Node {
	switch st.Vetting {
	case status.VettingNone:
		// Unknown status!
		return Td(Class("unknown"), g.Text("???"))
	case status.VettingOverride:
		// Last vetted manually via timestamps.txt.
		return Td(Class("overridden"), g.Text(st.LastVetted.String()))
	case status.VettingStaleOverride:
		// Vetted via release artifact, with an old override still on file.
		return Td(Class("wasOverridden"), g.Text(st.LastVetted.String()))
	default:
		return Td(g.Text(st.LastVetted.String()))
	}
}

func timestampCell(ts maven.Timestamp) g.Node {
	if ts.IsZero() {
		return Td(Class("unknown"), g.Text("???"))
	}
	return Td(g.Text(ts.String()))
}
