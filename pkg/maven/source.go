package maven

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "scijava-status (+https://status.scijava.org)"

// Source abstracts where repository content comes from: a local storage
// mirror or a remote HTTP repository. Behavior is identical modulo
// transport: a missing resource is (nil, nil) / (0, nil), never an error;
// errors mean the source itself could not be reached.
type Source interface {
	// Fetch returns the body of the resource at the repository-relative
	// path, or nil if no such resource exists.
	Fetch(ctx context.Context, relpath string) ([]byte, error)

	// DeployTime returns when the resource at the repository-relative path
	// was deployed, or 0 if no such resource exists.
	DeployTime(ctx context.Context, relpath string) (Timestamp, error)

	// List returns the entry names of the directory at the
	// repository-relative path, or nil if no such directory exists.
	List(ctx context.Context, relpath string) ([]string, error)
}

// LocalSource reads from a repository storage directory on disk, e.g. a
// Nexus storage root.
type LocalSource struct {
	Root string
}

func (s *LocalSource) Fetch(ctx context.Context, relpath string) ([]byte, error) {
	data, err := os.ReadFile(path.Join(s.Root, relpath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *LocalSource) DeployTime(ctx context.Context, relpath string) (Timestamp, error) {
	fi, err := os.Stat(path.Join(s.Root, relpath))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return FromTime(fi.ModTime()), nil
}

func (s *LocalSource) List(ctx context.Context, relpath string) ([]string, error) {
	entries, err := os.ReadDir(path.Join(s.Root, relpath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// RemoteSource reads from an HTTP(S) repository such as
// https://maven.scijava.org/content/groups/public.
type RemoteSource struct {
	Base   string
	client *retryablehttp.Client
}

// NewRemoteSource creates a remote source for the given repository base URL.
func NewRemoteSource(base string) *RemoteSource {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = stdlog.New(io.Discard, "", 0)
	// Transport-level retries only. The report is designed to be re-run
	// wholesale on its next scheduled invocation, not to recover mid-run.
	retryClient.RetryMax = 2
	return &RemoteSource{
		Base:   strings.TrimSuffix(base, "/"),
		client: retryClient,
	}
}

func (s *RemoteSource) url(relpath string) string {
	return s.Base + "/" + strings.TrimPrefix(relpath, "/")
}

func (s *RemoteSource) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return s.client.Do(req)
}

func (s *RemoteSource) Fetch(ctx context.Context, relpath string) ([]byte, error) {
	resp, err := s.do(ctx, http.MethodGet, s.url(relpath))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", s.url(relpath), resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// DeployTime issues a header-only request and parses the Last-Modified
// response header. A 404 means the release was never deployed.
func (s *RemoteSource) DeployTime(ctx context.Context, relpath string) (Timestamp, error) {
	resp, err := s.do(ctx, http.MethodHead, s.url(relpath))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return 0, nil
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HEAD %s: status %d", s.url(relpath), resp.StatusCode)
	}
	lm := resp.Header.Get("Last-Modified")
	if lm == "" {
		return 0, nil
	}
	t, err := http.ParseTime(lm)
	if err != nil {
		return 0, nil
	}
	return FromTime(t), nil
}

// List fetches the repository's HTML index page for a directory and
// extracts the linked entry names.
func (s *RemoteSource) List(ctx context.Context, relpath string) ([]string, error) {
	resp, err := s.do(ctx, http.MethodGet, s.url(relpath)+"/")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s/: status %d", s.url(relpath), resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	var names []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSuffix(href, "/")
		if href == "" || href == ".." || strings.Contains(href, "?") {
			return
		}
		// Index pages may link absolute URLs; keep the final segment.
		names = append(names, path.Base(href))
	})
	return names, nil
}
