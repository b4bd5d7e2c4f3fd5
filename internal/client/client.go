package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	graphql "github.com/hasura/go-graphql-client"

	"replayview/internal/logging"
	"replayview/internal/types"
)

const (
	defaultTimeout  = 10 * time.Second
	requestIDHeader = "X-Request-ID"
)

var ErrNotLoggedIn = errors.New("not logged in: no API token configured")

type Options struct {
	// Endpoint is the backend base URL; the GraphQL path is appended.
	Endpoint   string
	Token      string
	TokenPath  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client talks to the replay backend's private GraphQL API.
type Client struct {
	endpoint  string
	tokenPath string
	token     string
	gql       *graphql.Client
	logger    logging.Logger
}

type requestIDKey struct{}

func New(opts Options) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Client{
		endpoint:  endpoint,
		tokenPath: strings.TrimSpace(opts.TokenPath),
		token:     strings.TrimSpace(opts.Token),
		logger:    logging.Component(logger, "client"),
	}
	if c.token == "" {
		if err := c.loadToken(); err != nil {
			return nil, err
		}
	}
	c.gql = graphql.NewClient(endpoint+"/private", httpClient).
		WithRequestModifier(c.decorateRequest)
	return c, nil
}

// HasToken reports whether requests will be sent authenticated.
func (c *Client) HasToken() bool {
	return c != nil && c.token != ""
}

func (c *Client) GetSession(ctx context.Context, secureID string) (*types.Session, error) {
	secureID = strings.TrimSpace(secureID)
	if secureID == "" {
		return nil, errors.New("session id is required")
	}
	var resp sessionResponse
	if err := c.exec(ctx, "GetSession", getSessionQuery, map[string]any{"secure_id": secureID}, &resp); err != nil {
		return nil, err
	}
	if resp.Session == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "session " + secureID + " not found"}
	}
	return resp.Session, nil
}

// MarkSessionAsStarred sets the starred flag and returns the backend's view of
// the session, which carries at least the starred field.
func (c *Client) MarkSessionAsStarred(ctx context.Context, secureID string, starred bool) (*types.Session, error) {
	secureID = strings.TrimSpace(secureID)
	if secureID == "" {
		return nil, errors.New("session id is required")
	}
	if !c.HasToken() {
		return nil, ErrNotLoggedIn
	}
	var resp markSessionAsStarredResponse
	vars := map[string]any{"secure_id": secureID, "starred": starred}
	if err := c.exec(ctx, "MarkSessionAsStarred", markSessionAsStarredMutation, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Session == nil {
		return nil, &APIError{Message: "markSessionAsStarred returned no session"}
	}
	if resp.Session.SecureID == "" {
		resp.Session.SecureID = secureID
	}
	return resp.Session, nil
}

// GetViewer resolves the auth state. Without a token the viewer is logged out
// and no request is made.
func (c *Client) GetViewer(ctx context.Context, adminDomains []string) (types.Viewer, error) {
	if !c.HasToken() {
		return types.Viewer{}, nil
	}
	var resp adminResponse
	if err := c.exec(ctx, "GetAdmin", getAdminQuery, nil, &resp); err != nil {
		return types.Viewer{}, err
	}
	if resp.Admin == nil {
		return types.Viewer{}, nil
	}
	return types.Viewer{
		LoggedIn: true,
		Admin:    emailInDomains(resp.Admin.Email, adminDomains),
		Email:    resp.Admin.Email,
	}, nil
}

func (c *Client) exec(ctx context.Context, operation, query string, vars map[string]any, out any) error {
	requestID := logging.NewRequestID()
	ctx = context.WithValue(ctx, requestIDKey{}, requestID)
	logger := c.logger.With(logging.F("op", operation), logging.F("request_id", requestID))
	started := time.Now()

	data, err := c.gql.ExecRaw(ctx, query, vars)
	if err != nil {
		logger.Warn("graphql request failed", logging.F("err", err), logging.F("took", time.Since(started)))
		return wrapError(err)
	}
	logger.Debug("graphql request done", logging.F("took", time.Since(started)))
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) decorateRequest(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if id, ok := req.Context().Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set(requestIDHeader, id)
	}
}

func (c *Client) loadToken() error {
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func emailInDomains(email string, domains []string) bool {
	_, domain, ok := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	if !ok || domain == "" {
		return false
	}
	for _, candidate := range domains {
		if domain == strings.ToLower(strings.TrimPrefix(strings.TrimSpace(candidate), "@")) {
			return true
		}
	}
	return false
}
