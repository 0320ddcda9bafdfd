package mining

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"promoai-api/internal/common"
	"promoai-api/internal/config"
	"promoai-api/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const sampleXES = `<?xml version="1.0" encoding="UTF-8"?>
<log xes.version="1.0">
  <trace>
    <string key="concept:name" value="case-1"/>
    <event><string key="concept:name" value="register"/></event>
    <event><string key="concept:name" value="approve"/></event>
  </trace>
  <trace>
    <string key="concept:name" value="case-2"/>
    <event><string key="concept:name" value="register"/></event>
  </trace>
</log>`

const sampleCSV = `case:concept:name,concept:name,time:timestamp
case-1,register,2025-01-01T10:00:00Z
case-1,approve,2025-01-01T11:00:00Z
case-2,register,2025-01-02T10:00:00Z
`

const discoveredBPMN = `<?xml version="1.0" encoding="UTF-8"?><definitions/>`

const testSessionID = common.SessionID("session-123")

// newMiningServer returns an httptest server that mimics the pm4py
// worker, plus a counter of requests it received.
func newMiningServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/v1/discover":
			var req discoverRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.NotEmpty(t, req.Log)
			json.NewEncoder(w).Encode(discoverResponse{BPMNXML: discoveredBPMN})
		case "/v1/convert":
			var req convertRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.NotEmpty(t, req.From)
			assert.NotEmpty(t, req.To)
			json.NewEncoder(w).Encode(convertResponse{Content: "<pnml/>"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newTestService(t *testing.T, serviceURL string) (Service, *events.MockEventBus) {
	t.Helper()

	bus := events.NewMockEventBus()
	svc := NewService(config.MiningConfig{ServiceURL: serviceURL, Timeout: 5}, bus, zaptest.NewLogger(t))
	return svc, bus
}

func TestService_AnalyzeXES(t *testing.T) {
	server, _ := newMiningServer(t)
	svc, bus := newTestService(t, server.URL)

	analysis, err := svc.Analyze(context.Background(), testSessionID, "orders.xes", strings.NewReader(sampleXES))
	require.NoError(t, err)

	assert.Equal(t, FormatXES, analysis.Format)
	assert.Equal(t, 2, analysis.NumTraces)
	assert.Equal(t, 3, analysis.NumEvents)
	assert.Equal(t, discoveredBPMN, analysis.BPMNXML)

	published := bus.GetPublishedEvents(events.TopicLogAnalyzed)
	require.Len(t, published, 1)
	analyzed, ok := published[0].(events.LogAnalyzed)
	require.True(t, ok)
	assert.Equal(t, string(testSessionID), analyzed.SessionID)
	assert.Equal(t, "orders.xes", analyzed.FileName)
	assert.Equal(t, 2, analyzed.NumTraces)
	assert.Equal(t, 3, analyzed.NumEvents)
	assert.Equal(t, string(common.StatusSuccess), analyzed.Status)
	assert.NotEmpty(t, analyzed.Message)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestService_AnalyzeReadFailure(t *testing.T) {
	server, calls := newMiningServer(t)
	svc, bus := newTestService(t, server.URL)

	_, err := svc.Analyze(context.Background(), testSessionID, "orders.xes", failingReader{})

	var internal common.InternalError
	require.ErrorAs(t, err, &internal)
	assert.ErrorContains(t, err, "disk gone")
	assert.Equal(t, int32(0), calls.Load())
	assert.Empty(t, bus.GetPublishedEvents(events.TopicLogAnalyzed))
}

func TestService_AnalyzeCSV(t *testing.T) {
	server, _ := newMiningServer(t)
	svc, _ := newTestService(t, server.URL)

	analysis, err := svc.Analyze(context.Background(), testSessionID, "orders.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, FormatCSV, analysis.Format)
	assert.Equal(t, 2, analysis.NumTraces)
	assert.Equal(t, 3, analysis.NumEvents)
}

func TestService_AnalyzeGzippedXES(t *testing.T) {
	server, _ := newMiningServer(t)
	svc, _ := newTestService(t, server.URL)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(sampleXES))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	analysis, err := svc.Analyze(context.Background(), testSessionID, "orders.xes.gz", &buf)
	require.NoError(t, err)
	assert.Equal(t, FormatXES, analysis.Format)
	assert.Equal(t, 2, analysis.NumTraces)
}

func TestService_AnalyzeUnsupportedFormat(t *testing.T) {
	server, calls := newMiningServer(t)
	svc, bus := newTestService(t, server.URL)

	_, err := svc.Analyze(context.Background(), testSessionID, "notes.txt", strings.NewReader("plain text"))

	var unsupported UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "notes.txt", unsupported.FileName)
	assert.Contains(t, err.Error(), ".txt")

	// The format check happens before any discovery call
	assert.Equal(t, int32(0), calls.Load())
	assert.Empty(t, bus.GetPublishedEvents(events.TopicLogAnalyzed))
}

func TestService_AnalyzeMalformedXES(t *testing.T) {
	server, _ := newMiningServer(t)
	svc, _ := newTestService(t, server.URL)

	_, err := svc.Analyze(context.Background(), testSessionID, "broken.xes", strings.NewReader("<log><trace>"))

	var malformed MalformedLogError
	assert.ErrorAs(t, err, &malformed)
}

func TestService_AnalyzeCSVWithoutCaseColumn(t *testing.T) {
	server, _ := newMiningServer(t)
	svc, _ := newTestService(t, server.URL)

	_, err := svc.Analyze(context.Background(), testSessionID, "orders.csv", strings.NewReader("activity,timestamp\nregister,2025-01-01\n"))

	var malformed MalformedLogError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "case identifier")
}

func TestService_AnalyzeDiscoveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "miner crashed", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	svc, bus := newTestService(t, server.URL)

	_, err := svc.Analyze(context.Background(), testSessionID, "orders.xes", strings.NewReader(sampleXES))

	var discovery DiscoveryError
	require.ErrorAs(t, err, &discovery)
	assert.Equal(t, "discovery", discovery.Operation)
	assert.Empty(t, bus.GetPublishedEvents(events.TopicLogAnalyzed))
}

func TestService_AnalyzeServiceUnreachable(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")

	_, err := svc.Analyze(context.Background(), testSessionID, "orders.xes", strings.NewReader(sampleXES))

	var discovery DiscoveryError
	assert.ErrorAs(t, err, &discovery)
}

func TestService_Convert(t *testing.T) {
	server, _ := newMiningServer(t)
	svc, _ := newTestService(t, server.URL)

	content, err := svc.Convert(context.Background(), discoveredBPMN, "bpmn", "pnml")
	require.NoError(t, err)
	assert.Equal(t, "<pnml/>", content)
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		fileName   string
		format     Format
		compressed bool
		wantErr    bool
	}{
		{"log.xes", FormatXES, false, false},
		{"log.XES", FormatXES, false, false},
		{"log.xes.gz", FormatXES, true, false},
		{"log.csv", FormatCSV, false, false},
		{"log.csv.gz", FormatCSV, true, false},
		{"log.txt", "", false, true},
		{"log.txt.gz", "", false, true},
		{"log.gz", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			format, compressed, err := resolveFormat(tt.fileName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.compressed, compressed)
		})
	}
}
