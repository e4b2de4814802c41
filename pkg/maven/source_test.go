package maven

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLocalSourceFetch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "org", "scijava", "scijava-common")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "maven-metadata.xml"), []byte("<metadata/>"), 0644); err != nil {
		t.Fatal(err)
	}

	src := &LocalSource{Root: root}
	data, err := src.Fetch(context.Background(), "org/scijava/scijava-common/maven-metadata.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "<metadata/>" {
		t.Fatalf("unexpected body %q", data)
	}

	data, err = src.Fetch(context.Background(), "org/scijava/nope/maven-metadata.xml")
	if err != nil || data != nil {
		t.Fatalf("missing file must be (nil, nil), got (%v, %v)", data, err)
	}
}

func TestLocalSourceDeployTimeUsesModTime(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "artifact-1.0.0.pom")
	if err := os.WriteFile(path, []byte("<project/>"), 0644); err != nil {
		t.Fatal(err)
	}
	deployed := time.Date(2023, 5, 14, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, deployed, deployed); err != nil {
		t.Fatal(err)
	}

	src := &LocalSource{Root: root}
	ts, err := src.DeployTime(context.Background(), "artifact-1.0.0.pom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts != 20230514120000 {
		t.Fatalf("expected 20230514120000, got %d", ts)
	}

	ts, err = src.DeployTime(context.Background(), "missing.pom")
	if err != nil || ts != 0 {
		t.Fatalf("missing file must be (0, nil), got (%d, %v)", ts, err)
	}
}

func TestLocalSourceList(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "1.0.1-SNAPSHOT")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a-1.0.1-20230514.120000-3.pom", "a-1.0.1-20230514.120000-3.jar"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	src := &LocalSource{Root: root}
	names, err := src.List(context.Background(), "1.0.1-SNAPSHOT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 entries, got %v", names)
	}

	names, err = src.List(context.Background(), "2.0.0-SNAPSHOT")
	if err != nil || names != nil {
		t.Fatalf("missing dir must be (nil, nil), got (%v, %v)", names, err)
	}
}

func TestRemoteSourceFetch(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/org/scijava/scijava-common/maven-metadata.xml" {
			w.Write([]byte("<metadata/>"))
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()

	src := NewRemoteSource(ts.URL + "/")
	data, err := src.Fetch(context.Background(), "org/scijava/scijava-common/maven-metadata.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "<metadata/>" {
		t.Fatalf("unexpected body %q", data)
	}

	data, err = src.Fetch(context.Background(), "org/scijava/nope/maven-metadata.xml")
	if err != nil || data != nil {
		t.Fatalf("404 must be (nil, nil), got (%v, %v)", data, err)
	}
	if hits != 2 {
		t.Fatalf("expected one request per fetch, got %d", hits)
	}
}

func TestRemoteSourceDeployTimeParsesLastModified(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected a header-only request, got %s", r.Method)
		}
		if r.URL.Path != "/g/a/1.0.0/a-1.0.0.pom" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Last-Modified", "Sun, 14 May 2023 12:00:00 GMT")
	}))
	defer ts.Close()

	src := NewRemoteSource(ts.URL)
	got, err := src.DeployTime(context.Background(), "g/a/1.0.0/a-1.0.0.pom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 20230514120000 {
		t.Fatalf("expected 20230514120000, got %d", got)
	}

	got, err = src.DeployTime(context.Background(), "g/a/9.9.9/a-9.9.9.pom")
	if err != nil || got != 0 {
		t.Fatalf("no such release must be (0, nil), got (%d, %v)", got, err)
	}
}

func TestRemoteSourceListParsesIndexPage(t *testing.T) {
	index := `<html><body><table>
	<tr><td><a href="../">Parent Directory</a></td></tr>
	<tr><td><a href="a-1.0.1-20230514.120000-3.pom">a-1.0.1-20230514.120000-3.pom</a></td></tr>
	<tr><td><a href="a-1.0.1-20230514.120000-3.jar?describe">a-1.0.1-20230514.120000-3.jar?describe</a></td></tr>
	<tr><td><a href="https://repo.example.org/g/a/1.0.1-SNAPSHOT/a-1.0.1-20230601.080000-4.pom">absolute</a></td></tr>
	</table></body></html>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/g/a/1.0.1-SNAPSHOT/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(index))
	}))
	defer ts.Close()

	src := NewRemoteSource(ts.URL)
	names, err := src.List(context.Background(), "g/a/1.0.1-SNAPSHOT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]bool{
		"a-1.0.1-20230514.120000-3.pom": true,
		"a-1.0.1-20230601.080000-4.pom": true,
	}
	for _, name := range names {
		delete(want, name)
	}
	if len(want) != 0 {
		t.Fatalf("missing expected entries %v in %v", want, names)
	}
	for _, name := range names {
		if name == ".." || name == "Parent Directory" {
			t.Fatalf("parent links must be skipped: %v", names)
		}
	}
}
