package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maillet-agent/internal/application/port/input"
	"maillet-agent/internal/domain/entity"
	"maillet-agent/internal/infrastructure/logger"
)

type fakeProcessor struct {
	emails []entity.InboundEmail
	answer string
	err    error
}

func (f *fakeProcessor) Process(_ context.Context, email entity.InboundEmail) (*input.ProcessResult, error) {
	f.emails = append(f.emails, email)
	if f.err != nil {
		return nil, f.err
	}
	return &input.ProcessResult{FinalAnswer: f.answer, Iterations: 1}, nil
}

func postWebhook(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/postmark-webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWebhook_Success(t *testing.T) {
	processor := &fakeProcessor{answer: "sent"}
	server := NewServer(processor, logger.NewNop())

	rec := postWebhook(t, server,
		`{"From":"a@x.com","Subject":"Send","TextBody":"send 0.1 to b@x.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeStatus(t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Webhook received", resp.Message)

	require.Len(t, processor.emails, 1)
	assert.Equal(t, "a@x.com", processor.emails[0].From)
	assert.Equal(t, "Send", processor.emails[0].Subject)
	assert.Equal(t, "send 0.1 to b@x.com", processor.emails[0].TextBody)
}

func TestWebhook_MissingFrom(t *testing.T) {
	processor := &fakeProcessor{}
	server := NewServer(processor, logger.NewNop())

	rec := postWebhook(t, server, `{"Subject":"Send","TextBody":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeStatus(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "From")
	assert.Empty(t, processor.emails)
}

func TestWebhook_MalformedJSON(t *testing.T) {
	server := NewServer(&fakeProcessor{}, logger.NewNop())

	rec := postWebhook(t, server, `{not json`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", decodeStatus(t, rec).Status)
}

func TestWebhook_ProcessorErrorSurfacesAs500(t *testing.T) {
	processor := &fakeProcessor{err: fmt.Errorf("llm request failed: timeout")}
	server := NewServer(processor, logger.NewNop())

	rec := postWebhook(t, server, `{"From":"a@x.com","Subject":"s","TextBody":"b"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeStatus(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "timeout")
}

func TestWebhook_HTMLBodyFallback(t *testing.T) {
	processor := &fakeProcessor{answer: "ok"}
	server := NewServer(processor, logger.NewNop())

	rec := postWebhook(t, server,
		`{"From":"a@x.com","Subject":"s","TextBody":"","HtmlBody":"<html><body><p>check my <b>balance</b></p></body></html>"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, processor.emails, 1)
	assert.Equal(t, "check my balance", processor.emails[0].TextBody)
}

func TestHealth(t *testing.T) {
	server := NewServer(&fakeProcessor{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
