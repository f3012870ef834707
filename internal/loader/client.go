package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/7ntys/chaos-lab/internal/logging"
	"github.com/7ntys/chaos-lab/internal/menu"
)

// Resource paths served by the cafe backend.
const (
	MenuPath     = "/api/menu"
	SpecialsPath = "/api/specials"
)

// Decode errors for bodies that are valid JSON but not a single payload object.
var (
	ErrNullPayload  = errors.New("response body is null")
	ErrTrailingData = errors.New("unexpected data after response body")
)

// menuPayload is the body of GET /api/menu. A missing items field decodes as nil.
type menuPayload struct {
	Items []menu.Item `json:"items"`
}

// specialsPayload is the body of GET /api/specials.
type specialsPayload struct {
	Specials []menu.Special `json:"specials"`
}

// Client loads the cafe catalog over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport. Timeouts, if any, live there.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithUserAgent sets the User-Agent header on both requests.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		userAgent:  "chaos-cafe",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load fetches both resources concurrently and folds the outcome into a Result.
func (c *Client) Load(ctx context.Context) Result {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "loader")
	start := time.Now()

	var menuRes, specialsRes *http.Response
	var g errgroup.Group
	g.Go(func() error {
		var err error
		menuRes, err = c.get(ctx, MenuPath)
		return err
	})
	g.Go(func() error {
		var err error
		specialsRes, err = c.get(ctx, SpecialsPath)
		return err
	})
	err := g.Wait()
	defer closeBody(menuRes)
	defer closeBody(specialsRes)

	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Dur("elapsed", time.Since(start)).Msg("load request failed")
		return Failure(err)
	}

	if !isSuccess(menuRes) || !isSuccess(specialsRes) {
		log.Warn().Ctx(ctx).
			Int("menu_status", menuRes.StatusCode).
			Int("specials_status", specialsRes.StatusCode).
			Msg("backend returned non-success status")
		return Failure(ErrBackendUnavailable)
	}

	var mp menuPayload
	if err := decode(menuRes.Body, &mp); err != nil {
		log.Warn().Ctx(ctx).Err(err).Str("path", MenuPath).Msg("decoding response failed")
		return Failure(err)
	}
	var sp specialsPayload
	if err := decode(specialsRes.Body, &sp); err != nil {
		log.Warn().Ctx(ctx).Err(err).Str("path", SpecialsPath).Msg("decoding response failed")
		return Failure(err)
	}

	log.Debug().Ctx(ctx).
		Int("items", len(mp.Items)).
		Int("specials", len(sp.Specials)).
		Dur("elapsed", time.Since(start)).
		Msg("load settled")
	return Success(mp.Items, sp.Specials)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	target := c.baseURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return c.httpClient.Do(req)
}

func isSuccess(res *http.Response) bool {
	return res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices
}

// decode reads exactly one non-null JSON value from body into v.
func decode(body io.Reader, v any) error {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if bytes.Equal(raw, []byte("null")) {
		return ErrNullPayload
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return json.Unmarshal(raw, v)
}

func closeBody(res *http.Response) {
	if res == nil || res.Body == nil {
		return
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
