package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client is the HTTP client for the repository API. It implements
// BanFileMonitors and GameServers.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a repository API client. baseURL is the API root, e.g.
// https://repository.example.com.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// query encodes a filter as repeated gameTypes/ids params, the shape the
// repository API expects.
func (f ListFilter) query() url.Values {
	v := url.Values{}
	for _, g := range f.Games {
		v.Add("gameTypes", string(g))
	}
	for _, id := range f.Items {
		v.Add("ids", id.String())
	}
	return v
}

func (c *Client) get(ctx context.Context, path string, filter ListFilter, out any) error {
	u := c.baseURL + path + "?" + filter.query().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("repository %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("repository %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("repository %s: decode: %w", path, err)
	}
	return nil
}

// List fetches the ban file monitors visible under the filter.
func (c *Client) List(ctx context.Context, filter ListFilter) ([]BanFileMonitor, error) {
	var out struct {
		Entries []BanFileMonitor `json:"entries"`
	}
	if err := c.get(ctx, "/api/ban-file-monitors", filter, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// gameServerClient adapts Client to the GameServers interface; Go does not
// allow two List methods with different signatures on one type.
type gameServerClient struct{ c *Client }

// GameServers returns the game server view of the client.
func (c *Client) GameServers() GameServers { return gameServerClient{c} }

func (g gameServerClient) List(ctx context.Context, filter ListFilter) ([]GameServer, error) {
	var out struct {
		Entries []GameServer `json:"entries"`
	}
	if err := g.c.get(ctx, "/api/game-servers", filter, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}
