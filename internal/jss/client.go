package jss

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/codeGROOVE-dev/retry"
	"github.com/google/uuid"
	"github.com/hashicorp/go-version"

	"github.com/jssimporter/jss-helper/internal/config"
	"github.com/jssimporter/jss-helper/internal/logger"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// Client talks to the Jamf Pro Classic API. It is constructed once per process
// and handed to everything that needs the server.
type Client struct {
	baseURL  string
	username string
	password string
	attempts uint
	http     *http.Client
}

// New creates a client from connection settings.
func New(cfg *config.Config) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !cfg.VerifySSL} //nolint:gosec // user controlled
	if !cfg.VerifySSL {
		logger.Warn("[WARN] TLS certificate verification is disabled\n")
	}

	attempts := uint(config.DefaultRetries)
	if cfg.Retries > 1 {
		attempts = uint(cfg.Retries)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	return &Client{
		baseURL:  cfg.URL,
		username: cfg.Username,
		password: cfg.Password,
		attempts: attempts,
		http:     &http.Client{Timeout: timeout, Transport: transport},
	}
}

// URL returns the server base URL.
func (c *Client) URL() string { return c.baseURL }

// List returns summary objects (id and name) for every object of a kind.
func (c *Client) List(ctx context.Context, kind Kind) ([]*Object, error) {
	body, err := c.read(ctx, kind.Endpoint())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Endpoint(), err)
	}
	return parseList(kind, body)
}

// Get fetches one full object. An all-digit key is an id, anything else a name.
// A missing object yields an error wrapping ErrNotFound.
func (c *Client) Get(ctx context.Context, kind Kind, key string) (*Object, error) {
	body, err := c.read(ctx, objectPath(kind, key))
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", kind, key, err)
	}
	return ParseObject(kind, body)
}

// GetAll fetches the full record of every object of a kind, one request per
// object. Any failure fails the whole call.
func (c *Client) GetAll(ctx context.Context, kind Kind) ([]*Object, error) {
	summaries, err := c.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Retrieving %d %s objects\n", len(summaries), kind)

	full := make([]*Object, 0, len(summaries))
	for _, s := range summaries {
		obj, err := c.Get(ctx, kind, strconv.Itoa(s.ID()))
		if err != nil {
			return nil, err
		}
		full = append(full, obj)
	}
	return full, nil
}

// Save uploads a modified object. Saves are never retried.
func (c *Client) Save(ctx context.Context, obj *Object) error {
	body, err := obj.Bytes()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", obj.Kind(), err)
	}
	path := objectPath(obj.Kind(), strconv.Itoa(obj.ID()))
	if _, err := c.do(ctx, http.MethodPut, path, body); err != nil {
		return fmt.Errorf("save %s %q: %w", obj.Kind(), obj.Name(), err)
	}
	return nil
}

// ServerVersion asks the server for its version.
func (c *Client) ServerVersion(ctx context.Context) (*version.Version, error) {
	body, err := c.read(ctx, "jssuser")
	if err != nil {
		return nil, fmt.Errorf("server version: %w", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("parse jssuser xml: %w", err)
	}
	var raw string
	if root := doc.Root(); root != nil {
		if el := root.FindElement("version"); el != nil {
			raw = el.Text()
		}
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("server version %q: %w", raw, err)
	}
	return v, nil
}

// CheckServerVersion fails when the server is older than minimum.
func (c *Client) CheckServerVersion(ctx context.Context, minimum string) (*version.Version, error) {
	have, err := c.ServerVersion(ctx)
	if err != nil {
		return nil, err
	}
	if minimum == "" {
		return have, nil
	}
	want, err := version.NewVersion(minimum)
	if err != nil {
		return have, fmt.Errorf("minimum server version %q: %w", minimum, err)
	}
	if have.LessThan(want) {
		return have, fmt.Errorf("server version %s is older than required %s", have, want)
	}
	return have, nil
}

func objectPath(kind Kind, key string) string {
	if isNumeric(key) {
		return kind.Endpoint() + "/id/" + key
	}
	return kind.Endpoint() + "/name/" + url.PathEscape(key)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// read performs an idempotent GET, retried up to the configured attempts.
// A 404 is never retried.
func (c *Client) read(ctx context.Context, path string) ([]byte, error) {
	return retry.DoWithData(func() ([]byte, error) {
		return c.do(ctx, http.MethodGet, path, nil)
	},
		retry.Attempts(c.attempts),
		retry.Delay(initialBackoff),
		retry.MaxDelay(maxBackoff),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrNotFound) && ctx.Err() == nil
		}),
	)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	endpoint := c.baseURL + "/JSSResource/" + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "text/xml")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] %s %s -> %d in %v (request %s)\n", method, endpoint, resp.StatusCode, time.Since(start), requestID)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &APIError{Method: method, URL: endpoint, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
