package infra_yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/justinhuang159/Grubble/internal/config"
	usecase_session "github.com/justinhuang159/Grubble/internal/usecase/session"
)

const (
	searchLimit    = 30
	requestTimeout = 10 * time.Second
	// Provider diagnostics are truncated before they end up in error chains.
	maxErrorDetail = 300
)

// Client talks to a Yelp business-search provider behind the RapidAPI
// gateway. Providers vary in response envelope, so decoding sniffs for
// the known list fields.
type Client struct {
	apiKey  string
	apiHost string
	baseURL string
	httpc   *http.Client
}

func New(cfg config.Yelp) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) Search(ctx context.Context, q usecase_session.SearchQuery) ([]map[string]any, error) {
	if c.apiKey == "" || c.apiHost == "" {
		return nil, fmt.Errorf("%w: RAPIDAPI_KEY and RAPIDAPI_HOST must be set", usecase_session.ErrSourceNotConfigured)
	}

	params := url.Values{}
	params.Set("search_term", q.Term)
	params.Set("location", q.Location)
	params.Set("limit", strconv.Itoa(searchLimit))
	params.Set("offset", "0")
	params.Set("business_details_type", "basic")
	if q.Price != "" {
		params.Set("price", q.Price)
	}
	if q.RadiusMeters > 0 {
		params.Set("radius", strconv.Itoa(q.RadiusMeters))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase_session.ErrUpstream, err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch restaurants: %w", usecase_session.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase_session.ErrUpstream, err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: provider returned %d: %s",
			usecase_session.ErrUpstream, resp.StatusCode, truncate(string(body), maxErrorDetail))
	}

	return decodeBusinesses(body)
}

func decodeBusinesses(body []byte) ([]map[string]any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid provider response: %w", usecase_session.ErrUpstream, err)
	}

	var raw []any
	switch v := payload.(type) {
	case []any:
		raw = v
	case map[string]any:
		for _, field := range []string{"businesses", "results", "data", "business_search_result", "ad_business_search_result"} {
			if list, ok := v[field].([]any); ok {
				raw = list
				break
			}
		}
		if raw == nil {
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("%w: provider response missing list field, top-level keys: [%s]",
				usecase_session.ErrUpstream, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("%w: provider response missing list field", usecase_session.ErrUpstream)
	}

	businesses := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if business, ok := item.(map[string]any); ok {
			businesses = append(businesses, business)
		}
	}
	return businesses, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
