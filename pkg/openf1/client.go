package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"f1strategydashboard/pkg/apierror"
)

const (
	EndpointMeetings = "meetings"
	EndpointSessions = "sessions"
	EndpointLaps     = "laps"
	EndpointPit      = "pit"
	EndpointStints   = "stints"
	EndpointDrivers  = "drivers"
)

var knownEndpoints = map[string]bool{
	EndpointMeetings: true,
	EndpointSessions: true,
	EndpointLaps:     true,
	EndpointPit:      true,
	EndpointStints:   true,
	EndpointDrivers:  true,
}

// Filters are serialized as query parameters on the API request.
type Filters map[string]string

// Client fetches JSON arrays from the OpenF1 API and memoizes the raw
// responses for the lifetime of the process (or until ResetCache). The
// cache key is the endpoint plus the filters sorted by name, so filter
// order does not cause duplicate requests.
type Client struct {
	baseURL string
	http    *resty.Client

	mu    sync.Mutex
	cache map[string][]byte
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    resty.New().SetBaseURL(baseURL),
		cache:   make(map[string][]byte),
	}
}

func (c *Client) Meetings(ctx context.Context, year int, country string) ([]Meeting, error) {
	filters := Filters{"year": fmt.Sprint(year)}
	if country != "" {
		filters["country_name"] = country
	}
	body, err := c.fetch(ctx, EndpointMeetings, filters)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Meeting](EndpointMeetings, body)
}

func (c *Client) Sessions(ctx context.Context, meetingKey int) ([]Session, error) {
	body, err := c.fetch(ctx, EndpointSessions, Filters{"meeting_key": fmt.Sprint(meetingKey)})
	if err != nil {
		return nil, err
	}
	return decodeRecords[Session](EndpointSessions, body)
}

func (c *Client) Laps(ctx context.Context, sessionKey int) ([]Lap, error) {
	body, err := c.fetch(ctx, EndpointLaps, Filters{"session_key": fmt.Sprint(sessionKey)})
	if err != nil {
		return nil, err
	}
	return decodeRecords[Lap](EndpointLaps, body)
}

func (c *Client) Stints(ctx context.Context, sessionKey int) ([]Stint, error) {
	body, err := c.fetch(ctx, EndpointStints, Filters{"session_key": fmt.Sprint(sessionKey)})
	if err != nil {
		return nil, err
	}
	return decodeRecords[Stint](EndpointStints, body)
}

func (c *Client) PitStops(ctx context.Context, sessionKey int) ([]PitStop, error) {
	body, err := c.fetch(ctx, EndpointPit, Filters{"session_key": fmt.Sprint(sessionKey)})
	if err != nil {
		return nil, err
	}
	return decodeRecords[PitStop](EndpointPit, body)
}

func (c *Client) Drivers(ctx context.Context, sessionKey int) ([]Driver, error) {
	body, err := c.fetch(ctx, EndpointDrivers, Filters{"session_key": fmt.Sprint(sessionKey)})
	if err != nil {
		return nil, err
	}
	return decodeRecords[Driver](EndpointDrivers, body)
}

// ResetCache drops all memoized responses. The next fetch for any key goes
// back to the network.
func (c *Client) ResetCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string][]byte)
}

func (c *Client) fetch(ctx context.Context, endpoint string, filters Filters) ([]byte, error) {
	if !knownEndpoints[endpoint] {
		return nil, apierror.Request(fmt.Sprintf("unknown endpoint %q", endpoint), nil)
	}
	if c.baseURL == "" {
		return nil, apierror.Config("BASE_API_URL is not set")
	}

	key := cacheKey(endpoint, filters)
	c.mu.Lock()
	body, cached := c.cache[key]
	c.mu.Unlock()
	if cached {
		return body, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(filters).
		Get(endpoint)
	if err != nil {
		return nil, apierror.Request(fmt.Sprintf("GET %s", endpoint), err)
	}
	if resp.IsError() {
		return nil, apierror.RequestStatus(fmt.Sprintf("GET %s: %s", endpoint, resp.Status()), resp.StatusCode())
	}

	body = resp.Body()
	if !json.Valid(body) {
		return nil, apierror.Parse(fmt.Sprintf("decoding %s response", endpoint), nil)
	}

	c.mu.Lock()
	c.cache[key] = body
	c.mu.Unlock()

	return body, nil
}

func decodeRecords[T any](endpoint string, body []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, apierror.Parse(fmt.Sprintf("decoding %s response", endpoint), err)
	}
	return records, nil
}

func cacheKey(endpoint string, filters Filters) string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	for _, name := range names {
		b.WriteString("|")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(filters[name])
	}
	return b.String()
}
