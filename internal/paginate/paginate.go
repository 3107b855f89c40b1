// Package paginate implements the pagination core shared by every listing
// endpoint: it turns a page-fetch closure into a single aggregated result
// sequence, terminating by whichever convention the targeted backend speaks.
//
// Pagination is all-or-nothing. A failed fetch on any page aborts the whole
// call and discards the partial accumulator; no retry is attempted here. The
// backends are not transactional across pages, so data mutated mid-pagination
// can surface as duplicates or gaps in the result; that is a documented
// limitation of the APIs, not something this package compensates for.
package paginate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrUnknownDialect = errors.New("unknown pagination dialect")
)

// Defaults shared by the dialects. 500 is the largest page size the backends
// honor; the 500ms pause keeps the sentinel dialect under the ZCC rate limit.
const (
	DefaultPageSize = 500
	DefaultDelay    = 500 * time.Millisecond
)

// Dialect selects a termination convention. The dialect is a fixed property
// of the targeted backend, never auto-detected.
type Dialect int

const (
	// DialectSentinel increments a page number from the start page and stops
	// on the first empty page.
	DialectSentinel Dialect = iota
	// DialectTotalPages probes once for a reported total-page count, then
	// loops a page index up to that total.
	DialectTotalPages
	// DialectSized requests a fixed page size and only loops when the probe
	// reports more than one page.
	DialectSized
)

// Envelope is one physical page. Backends answer either a bare JSON array
// (the sentinel dialect) or an object carrying totalPages and a list field;
// totalPages arrives as a number or a quoted string depending on the surface.
type Envelope struct {
	TotalPages int
	// HasList records whether the page carried a listing at all. An object
	// response without a list field means the endpoint has no data.
	HasList bool
	Records []json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		e.HasList = true

		return json.Unmarshal(trimmed, &e.Records)
	}

	var page struct {
		TotalPages flexInt           `json:"totalPages"`
		List       []json.RawMessage `json:"list"`
	}

	err := json.Unmarshal(data, &page)
	if err != nil {
		return err
	}

	e.TotalPages = int(page.TotalPages)
	e.HasList = page.List != nil
	e.Records = page.List

	return nil
}

// flexInt absorbs a count arriving as a JSON number or a quoted string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*f = 0

		return nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parsing page count %q: %w", raw, err)
	}

	*f = flexInt(value)

	return nil
}

// Fetcher performs one physical page fetch. query carries only the
// pagination parameters; the closure supplies path, auth, and any filters.
type Fetcher func(ctx context.Context, query url.Values) (*Envelope, error)

// Pager aggregates the pages of one listing call.
type Pager struct {
	dialect        Dialect
	pageSize       int
	startPage      int
	delay          time.Duration
	exclusiveTotal bool
}

// Option configures a Pager.
type Option func(*Pager)

// WithPageSize sets the pagesize query parameter for the sized dialect.
func WithPageSize(size int) Option {
	return func(p *Pager) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// WithStartPage overrides the dialect's default first page number.
func WithStartPage(page int) Option {
	return func(p *Pager) {
		p.startPage = page
	}
}

// WithDelay sets the pause between consecutive fetches in the sentinel
// dialect. Zero disables the pause.
func WithDelay(delay time.Duration) Option {
	return func(p *Pager) {
		p.delay = delay
	}
}

// WithExclusiveTotal treats the reported totalPages as an exclusive loop
// bound. The backends are inconsistent about whether the count is 0- or
// 1-indexed; the default inclusive bound tolerates both at the cost of a
// possible trailing empty fetch.
func WithExclusiveTotal(exclusive bool) Option {
	return func(p *Pager) {
		p.exclusiveTotal = exclusive
	}
}

// New creates a Pager for the given dialect. The sentinel dialect starts at
// page 1, the index-looping dialects at page 0, unless WithStartPage says
// otherwise.
func New(dialect Dialect, opts ...Option) *Pager {
	pager := &Pager{
		dialect:   dialect,
		pageSize:  DefaultPageSize,
		startPage: -1,
		delay:     DefaultDelay,
	}

	for _, opt := range opts {
		opt(pager)
	}

	if pager.startPage < 0 {
		if dialect == DialectSentinel {
			pager.startPage = 1
		} else {
			pager.startPage = 0
		}
	}

	return pager
}

// Collect fetches pages until the dialect's termination condition is met and
// returns the concatenation of all records in page order. Any fetch error
// aborts the call; no partial result is returned.
func (p *Pager) Collect(ctx context.Context, fetch Fetcher) ([]json.RawMessage, error) {
	switch p.dialect {
	case DialectSentinel:
		return p.collectSentinel(ctx, fetch)
	case DialectTotalPages:
		return p.collectCounted(ctx, fetch, false)
	case DialectSized:
		return p.collectCounted(ctx, fetch, true)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownDialect, p.dialect)
	}
}

func (p *Pager) collectSentinel(ctx context.Context, fetch Fetcher) ([]json.RawMessage, error) {
	var result []json.RawMessage

	for page := p.startPage; ; page++ {
		if page > p.startPage {
			err := p.wait(ctx)
			if err != nil {
				return nil, err
			}
		}

		env, err := fetch(ctx, url.Values{"page": []string{strconv.Itoa(page)}})
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		if len(env.Records) == 0 {
			return result, nil
		}

		result = append(result, env.Records...)
	}
}

func (p *Pager) collectCounted(ctx context.Context, fetch Fetcher, sized bool) ([]json.RawMessage, error) {
	probeQuery := url.Values{}
	if sized {
		probeQuery.Set("pagesize", strconv.Itoa(p.pageSize))
	}

	probe, err := fetch(ctx, probeQuery)
	if err != nil {
		return nil, fmt.Errorf("fetching first page: %w", err)
	}

	if !probe.HasList {
		return []json.RawMessage{}, nil
	}

	if probe.TotalPages <= 1 {
		return probe.Records, nil
	}

	last := probe.TotalPages
	if p.exclusiveTotal {
		last--
	}

	var result []json.RawMessage

	for page := p.startPage; page <= last; page++ {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		query := url.Values{"page": []string{strconv.Itoa(page)}}
		if sized {
			query.Set("pagesize", strconv.Itoa(p.pageSize))
		}

		env, err := fetch(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		result = append(result, env.Records...)
	}

	return result, nil
}

// wait is the inter-page pause of the sentinel dialect: a rate-shaping
// pause, not a retry backoff. It returns early when ctx is cancelled.
func (p *Pager) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
