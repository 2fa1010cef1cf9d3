package sessionize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"eventagenda/internal/domain"
)

// DefaultBaseURL is the public Sessionize API root.
const DefaultBaseURL = "https://sessionize.com/api/v2"

type sessionizeHTTPFetcher struct {
	client  *http.Client
	baseURL string
}

// NewHTTPFetcher returns a fetcher that calls the Sessionize "All" view.
// An empty baseURL uses DefaultBaseURL.
func NewHTTPFetcher(client *http.Client, baseURL string) domain.SessionFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &sessionizeHTTPFetcher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (f *sessionizeHTTPFetcher) Fetch(ctx context.Context, sessionizeID string) (domain.SessionFetcherResponse, error) {
	if strings.TrimSpace(sessionizeID) == "" {
		return domain.SessionFetcherResponse{}, domain.ErrInvalidInput
	}
	endpoint := fmt.Sprintf("%s/%s/view/All", f.baseURL, url.PathEscape(sessionizeID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.SessionFetcherResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return domain.SessionFetcherResponse{}, &domain.TransientError{Err: fmt.Errorf("failed to fetch from sessionize: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.SessionFetcherResponse{}, fmt.Errorf("sessionize event %s: %w", sessionizeID, domain.ErrNotFound)
	case resp.StatusCode >= 500:
		return domain.SessionFetcherResponse{}, &domain.TransientError{Err: fmt.Errorf("sessionize api returned status: %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return domain.SessionFetcherResponse{}, fmt.Errorf("sessionize api returned status: %d", resp.StatusCode)
	}

	var data domain.SessionFetcherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return domain.SessionFetcherResponse{}, fmt.Errorf("failed to decode sessionize response: %w", err)
	}
	return data, nil
}
