// Package opengin provides a resilient client for the upstream entity/relation
// graph store. Aggregators depend on the Port seam and never retry on their
// own; retry policy lives here
package opengin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	perr "govgraph/internal/platform/errors"
	"govgraph/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	defaultUA          = "govgraph-api"
	defaultConnTimeout = 30 * time.Second
	defaultReadTimeout = 90 * time.Second
	defaultRetryBase   = 1 * time.Second
	defaultRetryCap    = 5 * time.Second
	defaultRetryBudget = 10 * time.Second
)

// Port is the narrow graph store surface consumed by aggregators
type Port interface {
	SearchEntities(ctx context.Context, filter EntityFilter) ([]Entity, error)
	Relations(ctx context.Context, entityID string, filter RelationFilter) ([]Relation, error)
	Metadata(ctx context.Context, entityID string) (map[string]string, error)
	Ping(ctx context.Context) error
}

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// Retry config for transient upstream failures
	RetryBase   time.Duration
	RetryCap    time.Duration
	RetryBudget time.Duration
}

// Client is the HTTP implementation of Port with capped exponential retry
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = defaultReadTimeout
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.RetryCap <= 0 {
		o.RetryCap = defaultRetryCap
	}
	if o.RetryBudget <= 0 {
		o.RetryBudget = defaultRetryBudget
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: o.ConnectTimeout}).DialContext,
	}
	return &Client{
		http:  &http.Client{Timeout: o.ReadTimeout, Transport: transport},
		opts:  o,
		log:   *logger.Named("opengin"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// SearchEntities finds entities matching the partial filter
// An empty result set surfaces as NotFound per the upstream contract
func (c *Client) SearchEntities(ctx context.Context, filter EntityFilter) ([]Entity, error) {
	var env searchEnvelope
	if err := c.do(ctx, http.MethodPost, "/v1/entities/search", filter, &env); err != nil {
		return nil, err
	}
	if len(env.Body) == 0 {
		return nil, perr.NotFoundf("no entities matched")
	}
	return env.Body, nil
}

// Relations fetches the relations of an entity matching the partial filter
// A missing edge is an empty slice, not an error
func (c *Client) Relations(ctx context.Context, entityID string, filter RelationFilter) ([]Relation, error) {
	if entityID == "" {
		return nil, perr.InvalidArgf("entity id is required")
	}
	var rels []Relation
	if err := c.do(ctx, http.MethodPost, "/v1/entities/"+entityID+"/relations", filter, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

// Metadata fetches the encoded metadata map of an entity
func (c *Client) Metadata(ctx context.Context, entityID string) (map[string]string, error) {
	if entityID == "" {
		return nil, perr.InvalidArgf("entity id is required")
	}
	var meta map[string]string
	if err := c.do(ctx, http.MethodGet, "/v1/entities/"+entityID+"/metadata", nil, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// Ping probes upstream reachability for readiness checks
// Any HTTP response counts as reachable; only transport failures do not
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/v1/entities/search", nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "opengin ping request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "opengin unreachable")
	}
	return drainAndClose(resp.Body)
}

// do issues one logical request with retries for transient upstream failures
// Terminal classifications (caller errors, not found) return immediately;
// transient ones back off exponentially from RetryBase capped at RetryCap
// until the overall RetryBudget is spent
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "opengin encode body failed")
		}
	}

	deadline := c.now().Add(c.opts.RetryBudget)
	reqID := uuid.NewString()
	attempt := 0

	for {
		select {
		case <-ctx.Done():
			return perr.Wrapf(ctx.Err(), perr.ErrorCodeGatewayTimeout, "opengin call canceled")
		default:
		}

		err := c.once(ctx, method, path, payload, reqID, attempt, out)
		if err == nil {
			return nil
		}
		if !perr.Retryable(err) {
			return err
		}

		back := c.backoff(attempt)
		if c.now().Add(back).After(deadline) {
			return err
		}
		c.log.Warn().
			Str("path", path).
			Int("attempt", attempt).
			Dur("retry_in", back).
			Msg("opengin transient failure retrying")
		c.sleep(back)
		attempt++
	}
}

// once performs a single attempt and classifies the outcome
func (c *Client) once(ctx context.Context, method, path string, payload []byte, reqID string, attempt int, out any) error {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, rd)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "opengin new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)

	if err != nil {
		if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
			return perr.Wrapf(err, perr.ErrorCodeGatewayTimeout, "opengin request timed out")
		}
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "opengin request failed")
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", lat).
		Msg("opengin http response")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUpstream, "opengin decode response failed")
		}
		return nil
	}

	code := perr.FromUpstreamStatus(resp.StatusCode)
	tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	switch code {
	case perr.ErrorCodeNotFound:
		return perr.NotFoundf("opengin resource not found")
	case perr.ErrorCodeInvalidArgument:
		return perr.InvalidArgf("opengin rejected request")
	default:
		return perr.Newf(code, "opengin status %d body %s", resp.StatusCode, string(tail))
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > c.opts.RetryCap || d <= 0 {
		return c.opts.RetryCap
	}
	return d
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 4096))
	return rc.Close()
}

// EntityByID resolves a single entity through any Port
// NotFound surfaces when the id matches nothing
func EntityByID(ctx context.Context, p Port, id string) (Entity, error) {
	ents, err := p.SearchEntities(ctx, EntityFilter{ID: id})
	if err != nil {
		return Entity{}, err
	}
	return ents[0], nil
}
