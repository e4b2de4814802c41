// Package github harvests open-issue information for the GitHub orgs that
// host BOM components, to score how much attention each repository needs.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/scijava/status.scijava.org/internal/utils"
	"github.com/scijava/status.scijava.org/pkg/storage"
)

const (
	searchEndpoint = "https://api.github.com/search/issues"
	perPage        = 100
	maxPages       = 100
)

// Harvester downloads open issues via the GitHub search API.
type Harvester struct {
	// Token is an optional API token; unauthenticated search is heavily
	// rate limited.
	Token string

	// Cache is optional; harvested stats are stored per org set.
	Cache    *storage.DB
	CacheTTL time.Duration

	// PageDelay spaces out search requests to stay under the rate limit.
	// Zero means a conservative default.
	PageDelay time.Duration

	client *retryablehttp.Client
}

func (h *Harvester) httpClient() *retryablehttp.Client {
	if h.client == nil {
		h.client = retryablehttp.NewClient()
		h.client.Logger = stdlog.New(io.Discard, "", 0)
		h.client.RetryMax = 2
	}
	return h.client
}

func (h *Harvester) pageDelay() time.Duration {
	if h.PageDelay > 0 {
		return h.PageDelay
	}
	return 5 * time.Second
}

// OrgStats returns per-repository issue stats, keyed by "org/repo", for all
// open issues across the given orgs.
func (h *Harvester) OrgStats(ctx context.Context, orgs []string) (map[string]*Stats, error) {
	if len(orgs) == 0 {
		return map[string]*Stats{}, nil
	}
	key := "issues:" + strings.Join(orgs, "+")
	if h.Cache != nil {
		if data, ok, err := h.Cache.Get(ctx, key); err == nil && ok {
			var stats map[string]*Stats
			if err := json.Unmarshal(data, &stats); err == nil {
				utils.Log.Debugf("Using cached issue stats for %v", orgs)
				return stats, nil
			}
		}
	}

	terms := make([]string, 0, len(orgs)+1)
	for _, org := range orgs {
		terms = append(terms, "user:"+org)
	}
	terms = append(terms, "state:open")
	query := strings.Join(terms, " ")

	stats := map[string]*Stats{}
	for page := 1; page <= maxPages; page++ {
		body, err := h.searchPage(ctx, query, page)
		if err != nil {
			return nil, err
		}
		items := gjson.GetBytes(body, "items").Array()
		for _, item := range items {
			h.tally(stats, item)
		}
		total := gjson.GetBytes(body, "total_count").Int()
		if int64(page*perPage) >= total || len(items) == 0 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(h.pageDelay()):
		}
	}

	if h.Cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := h.Cache.Set(ctx, key, data, h.CacheTTL); err != nil {
				utils.Log.Warnf("Could not cache issue stats: %v", err)
			}
		}
	}
	return stats, nil
}

func (h *Harvester) searchPage(ctx context.Context, query string, page int) ([]byte, error) {
	u := fmt.Sprintf("%s?q=%s&per_page=%d&page=%d",
		searchEndpoint, url.QueryEscape(query), perPage, page)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}
	resp, err := h.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub search page %d: status %d", page, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// tally folds one search result item into the per-repo stats.
func (h *Harvester) tally(stats map[string]*Stats, item gjson.Result) {
	repoURL := item.Get("repository_url").Str
	slug := strings.TrimPrefix(repoURL, "https://api.github.com/repos/")
	if slug == repoURL || strings.Count(slug, "/") != 1 {
		return
	}
	st := stats[slug]
	if st == nil {
		org, repo, _ := strings.Cut(slug, "/")
		st = &Stats{
			Org:        org,
			Repo:       repo,
			Labels:     map[string]int{},
			Milestones: map[string]int{},
			Assignees:  map[string]int{},
		}
		stats[slug] = st
	}

	st.Count++
	if item.Get("pull_request").Exists() {
		st.PRs++
		if item.Get("draft").Bool() {
			st.Drafts++
		}
	}
	for _, label := range item.Get("labels").Array() {
		st.Labels[label.Get("name").Str]++
	}
	milestone := item.Get("milestone.title").Str
	if milestone == "" {
		milestone = "none"
	}
	st.Milestones[milestone]++
	for _, assignee := range item.Get("assignees").Array() {
		st.Assignees[assignee.Get("login").Str]++
	}

	created := item.Get("created_at").Str
	if created != "" && (st.Oldest == "" || created < st.Oldest) {
		st.Oldest = created
	}
	updated := item.Get("updated_at").Str
	if updated > st.Updated {
		st.Updated = updated
	}
}
