package maven

import (
	"context"
	"testing"
)

const samplePOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
	<parent>
		<groupId>org.scijava</groupId>
		<artifactId>pom-scijava-base</artifactId>
		<version>14.0.0</version>
	</parent>
	<artifactId>scijava-common</artifactId>
	<version>2.90.0</version>
	<scm>
		<url>https://github.com/scijava/scijava-common</url>
	</scm>
	<issueManagement>
		<url>https://github.com/scijava/scijava-common/issues</url>
	</issueManagement>
	<ciManagement>
		<url>https://github.com/scijava/scijava-common/actions</url>
	</ciManagement>
	<developers>
		<developer>
			<id>ctrueden</id>
			<name>Curtis Rueden</name>
			<roles>
				<role>maintainer</role>
				<role>reviewer</role>
			</roles>
		</developer>
		<developer>
			<name>Mystery Contributor</name>
		</developer>
	</developers>
	<properties>
		<scijava.jvm.version>8</scijava.jvm.version>
		<imagej.version>2.14.0</imagej.version>
	</properties>
	<dependencyManagement>
		<dependencies>
			<dependency>
				<groupId>net.imagej</groupId>
				<artifactId>imagej</artifactId>
				<version>${imagej.version}</version>
			</dependency>
		</dependencies>
	</dependencyManagement>
</project>`

func TestParsePOM(t *testing.T) {
	pom, err := ParsePOM([]byte(samplePOM))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pom.EffectiveGroupID() != "org.scijava" {
		t.Fatalf("groupId must inherit from parent, got %q", pom.EffectiveGroupID())
	}
	if pom.ArtifactID != "scijava-common" || pom.EffectiveVersion() != "2.90.0" {
		t.Fatalf("unexpected identity %s:%s", pom.ArtifactID, pom.EffectiveVersion())
	}
	if pom.SCM.URL != "https://github.com/scijava/scijava-common" {
		t.Fatalf("unexpected scm url %q", pom.SCM.URL)
	}
	if pom.IssueManagement.URL != "https://github.com/scijava/scijava-common/issues" {
		t.Fatalf("unexpected issues url %q", pom.IssueManagement.URL)
	}
	if pom.CIManagement.URL != "https://github.com/scijava/scijava-common/actions" {
		t.Fatalf("unexpected ci url %q", pom.CIManagement.URL)
	}
}

func TestParsePOMDevelopers(t *testing.T) {
	pom, err := ParsePOM([]byte(samplePOM))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pom.Developers) != 2 {
		t.Fatalf("expected 2 developers, got %d", len(pom.Developers))
	}
	dev := pom.Developers[0]
	if dev.ID != "ctrueden" || len(dev.Roles) != 2 || dev.Roles[0] != "maintainer" {
		t.Fatalf("unexpected developer %+v", dev)
	}
	if pom.Developers[1].ID != "" || pom.Developers[1].Name != "Mystery Contributor" {
		t.Fatalf("unexpected developer %+v", pom.Developers[1])
	}
}

func TestParsePOMProperties(t *testing.T) {
	pom, err := ParsePOM([]byte(samplePOM))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pom.Properties["imagej.version"] != "2.14.0" {
		t.Fatalf("unexpected properties %v", pom.Properties)
	}
	deps := pom.DependencyManagement.Dependencies
	if len(deps) != 1 || deps[0].Version != "${imagej.version}" {
		t.Fatalf("unexpected managed dependencies %v", deps)
	}
}

func TestParsePOMRejectsGarbage(t *testing.T) {
	if _, err := ParsePOM([]byte("not xml at all <")); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestResolverPOM(t *testing.T) {
	src := &fakeSource{
		files: map[string][]byte{
			"org/scijava/scijava-common/2.90.0/scijava-common-2.90.0.pom": []byte(samplePOM),
		},
	}
	r := &Resolver{Source: src}

	pom, err := r.POM(context.Background(), testCoord, "2.90.0")
	if err != nil || pom == nil {
		t.Fatalf("expected a POM, got (%v, %v)", pom, err)
	}
	pom, err = r.POM(context.Background(), testCoord, "9.9.9")
	if err != nil || pom != nil {
		t.Fatalf("missing release must be (nil, nil), got (%v, %v)", pom, err)
	}
}
