// internal/userapi/client.go
//
// Remote user fetch.
//
// Context
// -------
// The console never touches the user store directly.  It calls the
// backend's GET <base>/api/users once per table render and decodes a flat
// JSON array of user.Record.  Any transport error, non-2xx status, or
// undecodable body surfaces as ErrFetch so the view can show its error
// panel; there is no retry.
//
// Notes
// -----
// • The HTTP client comes from go-cleanhttp: pooled transport, no shared
//   global state.
// • Oxford commas, two spaces after periods.
package userapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"github.com/yanizio/console/internal/metrics"
	"github.com/yanizio/console/internal/user"
)

// UsersPath is the backend route for the user list.
const UsersPath = "/api/users"

// ErrFetch wraps every failure of GetUsers.
var ErrFetch = errors.New("userapi: unable to fetch users")

// Fetcher is what views depend on.
type Fetcher interface {
	GetUsers(ctx context.Context) ([]user.Record, error)
}

// Client calls the user backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL (scheme://host[:port], no trailing
// slash needed).  timeout ≤ 0 leaves the client without a deadline beyond
// the request context.
func New(baseURL string, timeout time.Duration) *Client {
	hc := cleanhttp.DefaultPooledClient()
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// NewWithHTTPClient is New with a caller-supplied *http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// GetUsers fetches the full user list.
func (c *Client) GetUsers(ctx context.Context) ([]user.Record, error) {
	metrics.UsersFetchTotal.Inc()

	users, err := c.getUsers(ctx)
	if err != nil {
		metrics.UsersFetchErrorsTotal.Inc()
		zap.L().Error("error fetching users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (c *Client) getUsers(ctx context.Context) ([]user.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+UsersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP Error: %d", ErrFetch, resp.StatusCode)
	}

	var users []user.Record
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	return users, nil
}
