// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-scout/internal/limiter"
	"github.com/pdiddy/paper-scout/pkg/types"
)

// stubStrategy returns fixed output, standing in for a PDF parser.
type stubStrategy struct {
	name string
	text string
	err  error
}

func (s stubStrategy) Name() string                 { return s.name }
func (s stubStrategy) Attempt(_ []byte) (string, error) { return s.text, s.err }

// panicStrategy panics the way a PDF parser does on malformed input.
type panicStrategy struct{}

func (panicStrategy) Name() string                 { return "panic" }
func (panicStrategy) Attempt(_ []byte) (string, error) { panic("malformed xref table") }

func testExtractor(strategies ...Strategy) *Extractor {
	e := NewExtractor(types.ExtractionConfig{
		HTTPConfig:        types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		MaxConcurrent:     3,
		MaxFullTextLength: 50000,
	}, limiter.NewNop())
	if len(strategies) > 0 {
		e.strategies = strategies
	}
	return e
}

// --- fallback across strategies ---

func TestFromBytesFallsBackToSecondStrategy(t *testing.T) {
	short := strings.Repeat("a", 50)
	long := strings.Repeat("b", 500)
	e := testExtractor(
		stubStrategy{name: "first", text: short},
		stubStrategy{name: "second", text: long},
	)

	got, err := e.fromBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, long, got)
}

func TestFromBytesAcceptsFirstSufficientStrategy(t *testing.T) {
	long := strings.Repeat("a", 500)
	e := testExtractor(
		stubStrategy{name: "first", text: long},
		stubStrategy{name: "second", text: "should never be reached"},
	)

	got, err := e.fromBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, long, got)
}

func TestFromBytesThresholdIsExclusive(t *testing.T) {
	exactly := strings.Repeat("a", minTextLength)
	e := testExtractor(stubStrategy{name: "only", text: exactly})

	_, err := e.fromBytes(nil)
	assert.Error(t, err, "exactly 100 characters is below the acceptance threshold")
}

func TestFromBytesAllStrategiesInsufficient(t *testing.T) {
	e := testExtractor(
		stubStrategy{name: "first", text: "too short"},
		stubStrategy{name: "second", err: fmt.Errorf("no text layer")},
	)

	_, err := e.fromBytes(nil)
	assert.Error(t, err)
}

func TestFromBytesRecoversStrategyPanic(t *testing.T) {
	long := strings.Repeat("z", 500)
	e := testExtractor(panicStrategy{}, stubStrategy{name: "second", text: long})

	got, err := e.fromBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, long, got)
}

// --- truncation ---

func TestTruncateAppendsMarker(t *testing.T) {
	e := testExtractor()
	e.cfg.MaxFullTextLength = 10

	got := e.truncate(strings.Repeat("x", 100))
	assert.True(t, strings.HasSuffix(got, strings.TrimSpace(truncationMarker)))
	assert.Less(t, len(got), 100)
}

func TestTruncateLeavesShortTextAlone(t *testing.T) {
	e := testExtractor()
	got := e.truncate("  short text  ")
	assert.Equal(t, "short text", got)
}

// --- Extract over HTTP ---

func TestExtractDownloadFailureIsLocal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	e := testExtractor(stubStrategy{name: "only", text: strings.Repeat("a", 500)})
	_, err := e.Extract(context.Background(), ts.URL+"/pdf/2401.00001")
	assert.Error(t, err)
}

func TestExtractReturnsStrategyText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "%PDF-1.4 pretend body")
	}))
	defer ts.Close()

	long := strings.Repeat("a", 500)
	e := testExtractor(stubStrategy{name: "only", text: long})

	got, err := e.Extract(context.Background(), ts.URL+"/pdf/2401.00001")
	require.NoError(t, err)
	assert.Equal(t, long, got)
}

// --- batch ---

func batchPapers(baseURL string, n int) []types.Paper {
	papers := make([]types.Paper, n)
	for i := range papers {
		papers[i] = types.Paper{
			ID:     fmt.Sprintf("2401.%05d", i+1),
			PDFURL: fmt.Sprintf("%s/pdf/2401.%05d", baseURL, i+1),
		}
	}
	return papers
}

func TestExtractBatchAssignsInInputOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "%PDF-1.4 pretend body")
	}))
	defer ts.Close()

	e := testExtractor(stubStrategy{name: "only", text: strings.Repeat("a", 500)})
	papers := batchPapers(ts.URL, 5)

	var log bytes.Buffer
	out := e.ExtractBatch(context.Background(), papers, &log)

	require.Len(t, out, 5)
	for i, p := range out {
		assert.Equal(t, papers[i].ID, p.ID, "output order must match input order")
		require.NotNil(t, p.FullText)
	}
	assert.Contains(t, log.String(), "extracted full text for 5/5 papers")
}

func TestExtractBatchKeepsPapersWithoutText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "00002") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, "%PDF-1.4 pretend body")
	}))
	defer ts.Close()

	e := testExtractor(stubStrategy{name: "only", text: strings.Repeat("a", 500)})
	papers := batchPapers(ts.URL, 3)

	var log bytes.Buffer
	out := e.ExtractBatch(context.Background(), papers, &log)

	require.Len(t, out, 3)
	assert.NotNil(t, out[0].FullText)
	assert.Nil(t, out[1].FullText, "failed download leaves FullText unset")
	assert.NotNil(t, out[2].FullText)
	assert.Contains(t, log.String(), "extracted full text for 2/3 papers")
}

func TestExtractBatchBoundsConcurrency(t *testing.T) {
	var inFlight, peak int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		io.WriteString(w, "%PDF-1.4 pretend body")
	}))
	defer ts.Close()

	e := testExtractor(stubStrategy{name: "only", text: strings.Repeat("a", 500)})
	e.lim = limiter.New(3, 0)
	papers := batchPapers(ts.URL, 10)

	out := e.ExtractBatch(context.Background(), papers, io.Discard)

	require.Len(t, out, 10)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3),
		"no more than 3 downloads may be in flight at once")
}
