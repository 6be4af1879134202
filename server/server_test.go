package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	forecaster "github.com/aouyang1/go-trendcast"
	"github.com/aouyang1/go-trendcast/render"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "Year,Anomaly\n1950,-0.1\nabc,xyz\n1951,0.0\n1952,0.2\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New(nil)
	require.Nil(t, err)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, query, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/forecast"+query, "text/csv", strings.NewReader(body))
	require.Nil(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestForecastJSON(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "", testCSV)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc render.Document
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Len(t, doc.Historical, 3)
	assert.Len(t, doc.Forecast, 101)
	assert.Equal(t, 2024.0, doc.Forecast[0].Year)
	assert.Equal(t, 2124.0, doc.Forecast[100].Year)
	assert.InDelta(t, 0.15, doc.Line.Slope, 1e-9)
	require.Len(t, doc.Skipped, 1)
	assert.Equal(t, 3, doc.Skipped[0].Line)
}

func TestForecastCSV(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "?format=csv&start=2000&end=2001&baseline=1901-2000&precision=3", testCSV)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.Nil(t, err)

	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	assert.Equal(t, []string{
		"Baseline Period: 1901-2000",
		"Year,Anomaly",
		"1950,-0.1",
		"1951,0",
		"1952,0.2",
		"",
		"Year,Forecasted Anomaly",
		"2000,7.38",
		"2001,7.53",
	}, lines)
}

func TestForecastErrors(t *testing.T) {
	testData := map[string]struct {
		query  string
		body   string
		status int
	}{
		"empty dataset":  {"", "Year,Anomaly\n", http.StatusUnprocessableEntity},
		"all malformed":  {"", "Year,Anomaly\nabc,xyz\n", http.StatusUnprocessableEntity},
		"inverted range": {"?start=2010&end=2000", testCSV, http.StatusBadRequest},
		"huge range":     {"?start=0&end=10000000000", testCSV, http.StatusBadRequest},
		"overflow range": {"?start=-9223372036854775806&end=9223372036854775807", testCSV, http.StatusBadRequest},
		"bad start":      {"?start=soon", testCSV, http.StatusBadRequest},
		"bad end":        {"?end=later", testCSV, http.StatusBadRequest},
		"bad format":     {"?format=xml", testCSV, http.StatusBadRequest},
		"bad precision":  {"?format=csv&precision=x", testCSV, http.StatusBadRequest},
	}

	ts := newTestServer(t)
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			resp := post(t, ts, td.query, td.body)
			assert.Equal(t, td.status, resp.StatusCode)

			var errResp errorResponse
			require.Nil(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestForecastMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/forecast")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestNewInvalidOptions(t *testing.T) {
	opt := forecaster.NewDefaultOptions()
	opt.Range.Start = opt.Range.End + 1
	_, err := New(opt)
	assert.Error(t, err)
}
