package maven

import (
	"fmt"
	"strings"
)

// Coordinate identifies a Maven artifact by groupId and artifactId.
type Coordinate struct {
	GroupID    string
	ArtifactID string
}

// ParseCoordinate parses a "groupId:artifactId" pair.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, fmt.Errorf("invalid coordinate: %q", s)
	}
	return Coordinate{GroupID: parts[0], ArtifactID: parts[1]}, nil
}

func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID
}

// Path returns the repository-relative directory for this coordinate.
func (c Coordinate) Path() string {
	return strings.ReplaceAll(c.GroupID, ".", "/") + "/" + c.ArtifactID
}
