package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestRecorderCounts(t *testing.T) {
	rec := NewRecorder()

	rec.RecordFrame("PLAYING", false, 2*time.Millisecond)
	rec.RecordFrame("PLAYING", true, time.Millisecond)
	rec.RecordDropped(3)
	rec.RecordDropped(0)
	rec.RecordTransition("PLAYING", "ROUND_OVER")
	rec.RecordShot("ZONE", 2)
	rec.RecordRound("ZONE", 14)
	rec.RecordRound("ZONE", 9)

	snap := rec.Snapshot()
	assert.Equal(t, 2, snap.Frames)
	assert.Equal(t, 1, snap.IdleFrames)
	assert.Equal(t, int64(3), snap.DroppedFrames)
	assert.Equal(t, 1, snap.Transitions)
	assert.Equal(t, 1, snap.Shots)
	assert.Equal(t, 2, snap.Rounds)
	assert.Equal(t, 14, snap.BestScore)
	assert.Equal(t, time.Millisecond, snap.LastFrameLatency)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordFrame("PLAYING", false, time.Millisecond)
	rec.RecordShot("ZONE", 2)
	rec.RecordHTTPRequest("GET", "/api/v1/health", 200, time.Millisecond)
	rec.RecordSocketClients("render", 1)
	assert.Equal(t, Snapshot{}, rec.Snapshot())
}

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Nil(t, handler)
	assert.NotNil(t, shutdown)
}

func TestSetupEnabledServesPrometheus(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "shotclock-test",
	})
	require.NoError(t, err)
	require.NotNil(t, handler)
	defer shutdown(context.Background())

	rec.RecordFrame("PLAYING", false, time.Millisecond)
	rec.RecordShot("THREE_POINTER", 3)
	rec.RecordRound("THREE_POINTER", 6)
	rec.RecordTransition("ROUND_OVER", "PLAYING")
	rec.RecordHTTPRequest("GET", "/api/v1/session", 200, time.Millisecond)
	rec.RecordSocketClients("render", 1)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), "shots_total"), "exposition should contain shots_total")
	assert.True(t, strings.Contains(string(body), "frames_evaluated_total"))
}

func TestSetupPropagatesReaderErrors(t *testing.T) {
	orig := promReaderFactory
	defer func() { promReaderFactory = orig }()
	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("boom")
	}

	_, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true})
	assert.EqualError(t, err, "boom")
}
