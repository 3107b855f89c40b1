package paginate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

// pageRecord builds a distinguishable record for page/index assertions.
func pageRecord(page, index int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"page":%d,"index":%d}`, page, index))
}

func TestEnvelope_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		totalPages int
		hasList    bool
		records    int
	}{
		{
			name:    "bare array",
			input:   `[{"id":1},{"id":2}]`,
			hasList: true,
			records: 2,
		},
		{
			name:    "empty bare array",
			input:   `[]`,
			hasList: true,
			records: 0,
		},
		{
			name:       "object with numeric totalPages",
			input:      `{"totalPages":7,"list":[{"id":1}]}`,
			totalPages: 7,
			hasList:    true,
			records:    1,
		},
		{
			name:       "object with quoted totalPages",
			input:      `{"totalPages":"3","list":[{"id":1}]}`,
			totalPages: 3,
			hasList:    true,
			records:    1,
		},
		{
			name:    "object without list field",
			input:   `{"totalPages":0}`,
			hasList: false,
			records: 0,
		},
		{
			name:    "object with empty list",
			input:   `{"list":[]}`,
			hasList: true,
			records: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var env Envelope

			err := json.Unmarshal([]byte(tt.input), &env)
			require.NoError(t, err)

			assert.Equal(t, tt.totalPages, env.TotalPages)
			assert.Equal(t, tt.hasList, env.HasList)
			assert.Len(t, env.Records, tt.records)
		})
	}
}

func TestEnvelope_UnmarshalJSON_BadTotalPages(t *testing.T) {
	t.Parallel()

	var env Envelope

	err := json.Unmarshal([]byte(`{"totalPages":"many","list":[]}`), &env)
	require.Error(t, err)
}

func TestSentinel_ConcatenatesUntilEmptyPage(t *testing.T) {
	t.Parallel()

	pages := map[string][]json.RawMessage{
		"1": {pageRecord(1, 0), pageRecord(1, 1)},
		"2": {pageRecord(2, 0)},
		"3": {},
	}

	var fetched []string

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		page := query.Get("page")
		fetched = append(fetched, page)

		return &Envelope{HasList: true, Records: pages[page]}, nil
	}

	pager := New(DialectSentinel, WithDelay(0))

	records, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, fetched)
	require.Len(t, records, 3)
	assert.JSONEq(t, `{"page":1,"index":0}`, string(records[0]))
	assert.JSONEq(t, `{"page":1,"index":1}`, string(records[1]))
	assert.JSONEq(t, `{"page":2,"index":0}`, string(records[2]))
}

func TestSentinel_EmptyFirstPage(t *testing.T) {
	t.Parallel()

	calls := 0

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		calls++

		return &Envelope{HasList: true}, nil
	}

	pager := New(DialectSentinel, WithDelay(0))

	records, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 1, calls)
}

func TestSentinel_StartPageOverride(t *testing.T) {
	t.Parallel()

	var fetched []string

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		fetched = append(fetched, query.Get("page"))

		return &Envelope{HasList: true}, nil
	}

	pager := New(DialectSentinel, WithDelay(0), WithStartPage(5))

	_, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, fetched)
}

func TestSentinel_DelayBetweenPages(t *testing.T) {
	t.Parallel()

	const delay = 30 * time.Millisecond

	var stamps []time.Time

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		stamps = append(stamps, time.Now())

		if query.Get("page") == "3" {
			return &Envelope{HasList: true}, nil
		}

		return &Envelope{HasList: true, Records: []json.RawMessage{pageRecord(1, 0)}}, nil
	}

	pager := New(DialectSentinel, WithDelay(delay))

	_, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)
	require.Len(t, stamps, 3)

	for i := 1; i < len(stamps); i++ {
		assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), delay)
	}
}

func TestSentinel_FetchErrorDiscardsPartialResult(t *testing.T) {
	t.Parallel()

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		if query.Get("page") == "2" {
			return nil, errBackend
		}

		return &Envelope{HasList: true, Records: []json.RawMessage{pageRecord(1, 0)}}, nil
	}

	pager := New(DialectSentinel, WithDelay(0))

	records, err := pager.Collect(context.Background(), fetch)
	require.Error(t, err)
	require.ErrorIs(t, err, errBackend)
	assert.Nil(t, records)
}

func TestSentinel_CancelDuringDelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		cancel()

		return &Envelope{HasList: true, Records: []json.RawMessage{pageRecord(1, 0)}}, nil
	}

	pager := New(DialectSentinel, WithDelay(time.Hour))

	start := time.Now()

	records, err := pager.Collect(ctx, fetch)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, records)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestTotalPages_NoListMeansEmpty(t *testing.T) {
	t.Parallel()

	calls := 0

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		calls++

		return &Envelope{}, nil
	}

	pager := New(DialectTotalPages)

	records, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)
	require.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, 1, calls)
}

func TestTotalPages_SinglePageUsesProbeResult(t *testing.T) {
	t.Parallel()

	calls := 0

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		calls++

		return &Envelope{
			TotalPages: 1,
			HasList:    true,
			Records:    []json.RawMessage{pageRecord(0, 0)},
		}, nil
	}

	pager := New(DialectTotalPages)

	records, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, records, 1)
}

func TestTotalPages_InclusiveBoundByDefault(t *testing.T) {
	t.Parallel()

	var fetched []string

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		page := query.Get("page")
		fetched = append(fetched, page)

		env := &Envelope{TotalPages: 3, HasList: true}
		if page != "" && page != "3" {
			env.Records = []json.RawMessage{pageRecord(0, 0)}
		}

		return env, nil
	}

	pager := New(DialectTotalPages)

	records, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)

	// Probe without page, then the page index from 0 through the reported
	// total inclusive. A trailing empty page is tolerated, never fatal.
	assert.Equal(t, []string{"", "0", "1", "2", "3"}, fetched)
	assert.Len(t, records, 3)
}

func TestTotalPages_ExclusiveBound(t *testing.T) {
	t.Parallel()

	var fetched []string

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		fetched = append(fetched, query.Get("page"))

		return &Envelope{
			TotalPages: 3,
			HasList:    true,
			Records:    []json.RawMessage{pageRecord(0, 0)},
		}, nil
	}

	pager := New(DialectTotalPages, WithExclusiveTotal(true))

	records, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "0", "1", "2"}, fetched)
	assert.Len(t, records, 3)
}

func TestTotalPages_MidPaginationError(t *testing.T) {
	t.Parallel()

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		if query.Get("page") == "1" {
			return nil, errBackend
		}

		return &Envelope{
			TotalPages: 4,
			HasList:    true,
			Records:    []json.RawMessage{pageRecord(0, 0)},
		}, nil
	}

	pager := New(DialectTotalPages)

	records, err := pager.Collect(context.Background(), fetch)
	require.ErrorIs(t, err, errBackend)
	assert.Nil(t, records)
}

func TestTotalPages_CancelBetweenPages(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		if query.Get("page") == "0" {
			cancel()
		}

		return &Envelope{
			TotalPages: 100,
			HasList:    true,
			Records:    []json.RawMessage{pageRecord(0, 0)},
		}, nil
	}

	pager := New(DialectTotalPages)

	records, err := pager.Collect(ctx, fetch)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, records)
}

func TestSized_ProbeCarriesPageSize(t *testing.T) {
	t.Parallel()

	var queries []url.Values

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		queries = append(queries, query)

		return &Envelope{
			TotalPages: 1,
			HasList:    true,
			Records:    []json.RawMessage{pageRecord(0, 0)},
		}, nil
	}

	pager := New(DialectSized)

	records, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.Len(t, queries, 1)
	assert.Equal(t, "500", queries[0].Get("pagesize"))
	assert.Empty(t, queries[0].Get("page"))
}

func TestSized_CustomPageSizeOnEveryFetch(t *testing.T) {
	t.Parallel()

	var queries []url.Values

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		queries = append(queries, query)

		return &Envelope{
			TotalPages: 2,
			HasList:    true,
			Records:    []json.RawMessage{pageRecord(0, 0)},
		}, nil
	}

	pager := New(DialectSized, WithPageSize(100))

	_, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)

	require.NotEmpty(t, queries)

	for _, query := range queries {
		assert.Equal(t, "100", query.Get("pagesize"))
	}
}

func TestSized_NoListMeansEmpty(t *testing.T) {
	t.Parallel()

	calls := 0

	fetch := func(ctx context.Context, query url.Values) (*Envelope, error) {
		calls++

		return &Envelope{}, nil
	}

	pager := New(DialectSized)

	records, err := pager.Collect(context.Background(), fetch)
	require.NoError(t, err)
	require.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, 1, calls)
}

func TestCollect_UnknownDialect(t *testing.T) {
	t.Parallel()

	pager := New(Dialect(42))

	records, err := pager.Collect(context.Background(), func(ctx context.Context, query url.Values) (*Envelope, error) {
		return &Envelope{}, nil
	})
	require.ErrorIs(t, err, ErrUnknownDialect)
	assert.Nil(t, records)
}
