package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

const sampleFeed = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"

func TestHandleFeedRequest_NotReady(t *testing.T) {
	s := NewFeedServer(config.DefaultPort)

	rec := httptest.NewRecorder()
	s.handleFeedRequest(rec, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, config.RetryAfterSeconds, rec.Header().Get(config.HeaderRetryAfter))
}

func TestHandleFeedRequest_ServesContent(t *testing.T) {
	s := NewFeedServer(config.DefaultPort)
	s.Update([]byte(sampleFeed))

	rec := httptest.NewRecorder()
	s.handleFeedRequest(rec, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sampleFeed, rec.Body.String())
	assert.Equal(t, config.MimeTextCalendar, rec.Header().Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, rec.Header().Get(config.HeaderXContentType))
	assert.NotEmpty(t, rec.Header().Get(config.HeaderETag))
	assert.NotEmpty(t, rec.Header().Get(config.HeaderLastModified))
}

func TestHandleFeedRequest_ETagNotModified(t *testing.T) {
	s := NewFeedServer(config.DefaultPort)
	s.Update([]byte(sampleFeed))

	// First request to learn the ETag.
	rec := httptest.NewRecorder()
	s.handleFeedRequest(rec, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))
	etag := rec.Header().Get(config.HeaderETag)
	require.NotEmpty(t, etag)

	// Conditional request with the same ETag.
	req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
	req.Header.Set(config.HeaderIfNoneMatch, etag)
	rec = httptest.NewRecorder()
	s.handleFeedRequest(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleFeedRequest_ETagChangesWithContent(t *testing.T) {
	s := NewFeedServer(config.DefaultPort)

	s.Update([]byte(sampleFeed))
	rec := httptest.NewRecorder()
	s.handleFeedRequest(rec, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))
	first := rec.Header().Get(config.HeaderETag)

	s.Update([]byte(sampleFeed + "X"))
	rec = httptest.NewRecorder()
	s.handleFeedRequest(rec, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))
	second := rec.Header().Get(config.HeaderETag)

	assert.NotEqual(t, first, second)
}

func TestHandleFeedRequest_HeadOmitsBody(t *testing.T) {
	s := NewFeedServer(config.DefaultPort)
	s.Update([]byte(sampleFeed))

	rec := httptest.NewRecorder()
	s.handleFeedRequest(rec, httptest.NewRequest(http.MethodHead, config.RouteRoot, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(config.HeaderETag))
}

func TestHandleFeedRequest_MethodNotAllowed(t *testing.T) {
	s := NewFeedServer(config.DefaultPort)
	s.Update([]byte(sampleFeed))

	rec := httptest.NewRecorder()
	s.handleFeedRequest(rec, httptest.NewRequest(http.MethodPost, config.RouteRoot, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, config.AllowedMethods, rec.Header().Get(config.HeaderAllow))
}

func TestStart_RequiresPort(t *testing.T) {
	s := NewFeedServer("")

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)
}

func TestStart_ShutsDownOnContextCancel(t *testing.T) {
	// Port 0 binds to any free port; we only exercise the lifecycle.
	s := NewFeedServer("0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, config.ChannelBufferSize)
	go func() { done <- s.Start(ctx) }()

	// Give the listener a moment to come up, then cancel.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(config.ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}
