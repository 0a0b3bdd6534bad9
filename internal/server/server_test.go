package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/document-generator/internal/pipeline"
	"github.com/jonathan/document-generator/internal/rendering"
	"github.com/jonathan/document-generator/internal/server/ratelimit"
	"github.com/jonathan/document-generator/internal/types"
)

var fakePDF = []byte("%PDF-1.4 fake")

type fakeGenerator struct {
	mu    sync.Mutex
	err   error
	calls int
	last  *types.Request
}

func (f *fakeGenerator) GenerateWithProgress(_ context.Context, req *types.Request, onProgress pipeline.ProgressCallback) (*pipeline.Result, error) {
	f.mu.Lock()
	f.calls++
	f.last = req
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if onProgress != nil {
		onProgress(pipeline.ProgressEvent{Step: pipeline.StepRender, Message: "document rendered", RequestID: "req-1", Content: 12})
	}
	return &pipeline.Result{RequestID: "req-1", PDF: fakePDF, Pages: 1}, nil
}

func newTestServer(gen Generator, mutate func(*Config)) *Server {
	cfg := Config{
		Port:          5000,
		AllowedOrigin: "http://localhost:5173",
		MaxConcurrent: 2,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg, gen, nil)
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGenerate_ReturnsPDF(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestServer(gen, nil)

	w := post(t, s.Handler(), "/generate", `{"doc_type":"cv","data":{"full_name":"Jane Doe"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Jane_Doe_cv.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	assert.Equal(t, fakePDF, w.Body.Bytes())
	assert.Equal(t, types.DocumentCV, gen.last.DocType)
}

func TestGenerate_MissingNameUsesStudent(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, nil)

	w := post(t, s.Handler(), "/generate", `{"doc_type":"lor","data":{}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="student_lor.pdf"`)
}

func TestGenerate_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"doc_type":`},
		{"missing doc_type", `{"data":{}}`},
		{"unknown doc_type", `{"doc_type":"memo","data":{}}`},
		{"data not object", `{"doc_type":"cv","data":[1,2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			s := newTestServer(gen, nil)

			w := post(t, s.Handler(), "/generate", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, "Invalid request", body.Error)
			assert.NotEmpty(t, body.Details)
			assert.Zero(t, gen.calls)
		})
	}
}

func TestGenerate_PipelineFailure(t *testing.T) {
	gen := &fakeGenerator{err: &rendering.RenderError{Message: "chrome crashed"}}
	s := newTestServer(gen, nil)

	w := post(t, s.Handler(), "/generate", `{"doc_type":"sop","data":{}}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decodeError(t, w)
	assert.Equal(t, "Failed to generate document", body.Error)
	assert.Contains(t, body.Details, "chrome crashed")
}

func TestGenerate_BusyWhenNoSlotFreesInTime(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestServer(gen, func(c *Config) {
		c.MaxConcurrent = 1
		c.RequestTimeout = 50 * time.Millisecond
	})

	// hold the only slot
	require.NoError(t, s.slots.Acquire(context.Background(), 1))
	defer s.slots.Release(1)

	w := post(t, s.Handler(), "/generate", `{"doc_type":"cv","data":{}}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Zero(t, gen.calls)
}

type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingGenerator) GenerateWithProgress(ctx context.Context, _ *types.Request, _ pipeline.ProgressCallback) (*pipeline.Result, error) {
	close(b.started)
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &pipeline.Result{RequestID: "req-1", PDF: fakePDF}, nil
}

func TestGenerate_SlotHeldDuringModelCall(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	s := newTestServer(gen, func(c *Config) {
		c.MaxConcurrent = 1
		c.RequestTimeout = time.Second
	})
	h := s.Handler()

	done := make(chan int)
	go func() {
		done <- post(t, h, "/generate", `{"doc_type":"cv","data":{}}`).Code
	}()
	<-gen.started

	assert.False(t, s.slots.TryAcquire(1))

	close(gen.release)
	assert.Equal(t, http.StatusOK, <-done)
	require.True(t, s.slots.TryAcquire(1))
	s.slots.Release(1)
}

func TestCORS(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestRateLimit(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestServer(gen, func(c *Config) {
		c.RateLimit = ratelimit.NewConfig(true, 1, time.Hour, 1, "")
	})
	h := s.Handler()

	w := post(t, h, "/generate", `{"doc_type":"cv","data":{}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = post(t, h, "/generate", `{"doc_type":"cv","data":{}}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 1, gen.calls)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	hw := httptest.NewRecorder()
	h.ServeHTTP(hw, req)
	assert.Equal(t, http.StatusOK, hw.Code)
}

func TestRateLimit_StreamRoute(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestServer(gen, func(c *Config) {
		c.RateLimit = ratelimit.NewConfig(true, 1, time.Hour, 1, "")
	})
	h := s.Handler()

	var codes []int
	for i := 0; i < 5; i++ {
		w := post(t, h, "/generate/stream", `{"doc_type":"cv","data":{}}`)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
	assert.Equal(t, 1, gen.calls)
}

func TestRateLimit_SharedAcrossGenerateRoutes(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestServer(gen, func(c *Config) {
		c.RateLimit = ratelimit.NewConfig(true, 1, time.Hour, 1, "")
	})
	h := s.Handler()

	require.Equal(t, http.StatusOK, post(t, h, "/generate", `{"doc_type":"cv","data":{}}`).Code)

	w := post(t, h, "/generate/stream", `{"doc_type":"cv","data":{}}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateStream(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, nil)

	w := post(t, s.Handler(), "/generate/stream", `{"doc_type":"cv","data":{"full_name":"Jane Doe"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	events := map[string]string{}
	var event string
	scanner := bufio.NewScanner(strings.NewReader(w.Body.String()))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			events[event] = strings.TrimPrefix(line, "data: ")
		}
	}

	var progress pipeline.ProgressEvent
	require.NoError(t, json.Unmarshal([]byte(events["progress"]), &progress))
	assert.Equal(t, pipeline.StepRender, progress.Step)
	assert.Nil(t, progress.Content)

	var complete CompleteEvent
	require.NoError(t, json.Unmarshal([]byte(events["complete"]), &complete))
	assert.Equal(t, "Jane_Doe_cv.pdf", complete.Filename)
	assert.Equal(t, fakePDF, complete.PDF)
}

func TestGenerateStream_Error(t *testing.T) {
	s := newTestServer(&fakeGenerator{err: errors.New("boom")}, nil)

	w := post(t, s.Handler(), "/generate/stream", `{"doc_type":"cv","data":{}}`)

	assert.Contains(t, w.Body.String(), "event: error")
	assert.Contains(t, w.Body.String(), "boom")
}

func TestClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:5555"
	assert.Equal(t, "192.168.1.5", clientID(req))

	req.RemoteAddr = "not-an-addr"
	assert.Equal(t, "not-an-addr", clientID(req))
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, func(c *Config) { c.Port = 0 })
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
