package forums

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// Client talks to the forum's REST API. It authenticates with a server-side
// API key for member lookups and with the user's OAuth token for the
// who-am-i call during login.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a forum API client. baseURL is the forum root, e.g.
// https://forums.example.com.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// memberResponse represents the forum API member payload.
type memberResponse struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	PhotoURL        string     `json:"photoUrl"`
	TimeZone        string     `json:"timeZone"`
	PrimaryGroup    groupRef   `json:"primaryGroup"`
	SecondaryGroups []groupRef `json:"secondaryGroups"`
}

type groupRef struct {
	Name string `json:"name"`
}

func (r *memberResponse) member() *Member {
	m := &Member{
		ID:           strconv.Itoa(r.ID),
		DisplayName:  r.Name,
		Email:        r.Email,
		PhotoURL:     r.PhotoURL,
		TimeZone:     r.TimeZone,
		PrimaryGroup: r.PrimaryGroup.Name,
	}
	for _, g := range r.SecondaryGroups {
		m.SecondaryGroups = append(m.SecondaryGroups, g.Name)
	}
	return m
}

// GetMember fetches the member record by id using the server API key.
func (c *Client) GetMember(ctx context.Context, externalID string) (*Member, error) {
	u := fmt.Sprintf("%s/api/core/members/%s", c.baseURL, url.PathEscape(externalID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forum member lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forum member lookup: status %d", resp.StatusCode)
	}

	var out memberResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("forum member lookup: decode: %w", err)
	}
	return out.member(), nil
}

// Identify resolves the member behind a freshly exchanged OAuth token by
// calling the forum's who-am-i endpoint as that user.
func (c *Client) Identify(ctx context.Context, token *oauth2.Token) (*Member, error) {
	u := c.baseURL + "/api/core/me"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forum identify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forum identify: status %d", resp.StatusCode)
	}

	var out memberResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("forum identify: decode: %w", err)
	}
	return out.member(), nil
}
