package usac

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/de-tools/erate-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// DefaultEndpoint is the USAC FRN line items resource on the Socrata open
// data platform.
const DefaultEndpoint = "https://opendata.usac.org/resource/hbj5-2bpj.json"

const (
	defaultQueryTimeout = 60 * time.Second
	defaultBulkTimeout  = 300 * time.Second

	// searchFetchLimit caps the raw rows pulled for a discovery search; the
	// resolver dedupes and applies the user-facing limit afterwards.
	searchFetchLimit = 1000
)

type Settings struct {
	Endpoint string
	// QueryTimeout bounds search and single organization/year requests.
	QueryTimeout time.Duration
	// BulkTimeout bounds whole state/year pulls, which can run long.
	BulkTimeout time.Duration
	HTTPClient  *http.Client
}

// Client queries the open-data endpoint with SoQL filter expressions and
// returns untyped row sets. Requests are synchronous; a request runs to
// completion or to its timeout, with no retry beyond the deliberate
// exact-then-partial organization fallback.
type Client struct {
	endpoint     string
	http         *http.Client
	queryTimeout time.Duration
	bulkTimeout  time.Duration
}

func NewClient(settings Settings) *Client {
	if settings.Endpoint == "" {
		settings.Endpoint = DefaultEndpoint
	}
	if settings.QueryTimeout <= 0 {
		settings.QueryTimeout = defaultQueryTimeout
	}
	if settings.BulkTimeout <= 0 {
		settings.BulkTimeout = defaultBulkTimeout
	}
	if settings.HTTPClient == nil {
		settings.HTTPClient = http.DefaultClient
	}
	return &Client{
		endpoint:     settings.Endpoint,
		http:         settings.HTTPClient,
		queryTimeout: settings.QueryTimeout,
		bulkTimeout:  settings.BulkTimeout,
	}
}

// SearchOrganizations pulls raw rows whose organization name contains the
// term, optionally restricted to a state. Matching semantics live in the
// query; deduplication is the discovery resolver's job.
func (c *Client) SearchOrganizations(
	ctx context.Context,
	term, state string,
) ([]store.FundingRecord, error) {
	return c.query(ctx, c.queryTimeout, searchWhere(term, state), searchFetchLimit)
}

// FetchOrganizationYear retrieves line items for one organization and year.
// It attempts an exact case-insensitive name match first and falls back to a
// substring match only when the exact phase returns zero rows. Organization
// names are inconsistently suffixed across years, so the exact phase buys
// precision and the partial phase is the recovery path. Request errors
// propagate without triggering the fallback.
func (c *Client) FetchOrganizationYear(
	ctx context.Context,
	org, year string,
	limit int,
) ([]store.FundingRecord, error) {
	logger := zerolog.Ctx(ctx)

	records, err := c.query(ctx, c.queryTimeout, exactOrganizationWhere(org, year), limit)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records, nil
	}

	logger.Debug().
		Str("organization", org).
		Str("year", year).
		Msg("no exact match, retrying with partial match")

	return c.query(ctx, c.queryTimeout, partialOrganizationWhere(org, year), limit)
}

// FetchStateYear retrieves every line item filed for a state and funding
// year. No fallback applies; the query is a direct conjunction.
func (c *Client) FetchStateYear(
	ctx context.Context,
	state, year string,
	limit int,
) ([]store.FundingRecord, error) {
	return c.query(ctx, c.bulkTimeout, stateYearWhere(state, year), limit)
}

func (c *Client) query(
	ctx context.Context,
	timeout time.Duration,
	where string,
	limit int,
) ([]store.FundingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params := url.Values{}
	params.Set("$where", where)
	params.Set("$limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("usac: building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var records []store.FundingRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &ParseError{Err: err}
	}
	return records, nil
}
