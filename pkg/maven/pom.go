package maven

import (
	"context"
	"encoding/xml"
	"strings"
)

// POM is the subset of a Maven project descriptor the report cares about:
// identity, source/CI/issue hosting, the developer team, and (for BOMs)
// managed dependency versions.
type POM struct {
	XMLName xml.Name `xml:"project"`

	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`

	Parent struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
		Version    string `xml:"version"`
	} `xml:"parent"`

	SCM struct {
		URL string `xml:"url"`
	} `xml:"scm"`
	IssueManagement struct {
		URL string `xml:"url"`
	} `xml:"issueManagement"`
	CIManagement struct {
		URL string `xml:"url"`
	} `xml:"ciManagement"`

	Developers []Developer `xml:"developers>developer"`
	Properties Properties  `xml:"properties"`

	DependencyManagement struct {
		Dependencies []Dependency `xml:"dependencies>dependency"`
	} `xml:"dependencyManagement"`
}

// Developer is one <developers><developer> entry.
type Developer struct {
	ID    string   `xml:"id"`
	Name  string   `xml:"name"`
	Roles []string `xml:"roles>role"`
}

// Dependency is one managed dependency entry.
type Dependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Type       string `xml:"type"`
}

// Properties holds the free-form <properties> block.
type Properties map[string]string

func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	*p = Properties{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			(*p)[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// ParsePOM parses a project descriptor.
func ParsePOM(data []byte) (*POM, error) {
	var pom POM
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, err
	}
	return &pom, nil
}

// EffectiveGroupID is the POM's groupId, inherited from the parent when
// not declared.
func (p *POM) EffectiveGroupID() string {
	if p.GroupID != "" {
		return p.GroupID
	}
	return p.Parent.GroupID
}

// EffectiveVersion is the POM's version, inherited from the parent when
// not declared.
func (p *POM) EffectiveVersion() string {
	if p.Version != "" {
		return p.Version
	}
	return p.Parent.Version
}

// POM fetches and parses the release POM of the given version. Returns
// (nil, nil) when no such release is deployed.
func (r *Resolver) POM(ctx context.Context, coord Coordinate, version string) (*POM, error) {
	data, err := r.Source.Fetch(ctx, r.releasePOMPath(coord, version))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return ParsePOM(data)
}
