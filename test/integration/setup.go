// Package integration wires the full pipeline against a relay stub and
// exercises it over HTTP: token acquisition, search, filtering, sorting,
// and date shifting.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/faresight/flight-result-pipeline/internal/adapter/http"
	"github.com/faresight/flight-result-pipeline/internal/adapter/http/response"
	"github.com/faresight/flight-result-pipeline/internal/adapter/upstream"
	"github.com/faresight/flight-result-pipeline/internal/auth"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/logger"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/storage"
	"github.com/faresight/flight-result-pipeline/internal/usecase"
	"github.com/faresight/flight-result-pipeline/test/mock"
)

// AppSecret is the shared secret the relay stub accepts.
const AppSecret = "integration-secret"

// Stack is a fully wired pipeline instance bound to a relay stub.
type Stack struct {
	Echo    *echo.Echo
	Client  *upstream.Client
	Tokens  *auth.Store
	Flow    *auth.Flow
	Session *usecase.Session
	Persist storage.Store
}

// NewStack wires the pipeline against the relay with in-memory persistence.
// The relay is started and cleaned up with the test.
func NewStack(t *testing.T, relay *mock.Relay) *Stack {
	t.Helper()
	return NewStackWithStore(t, relay, storage.NewMemory())
}

// NewStackWithStore wires the pipeline with a caller-supplied persistence
// store, for exercising persistence failure modes.
func NewStackWithStore(t *testing.T, relay *mock.Relay, persist storage.Store) *Stack {
	t.Helper()

	baseURL := relay.Start()
	t.Cleanup(relay.Close)

	log := logger.Nop()
	client := upstream.NewClient(upstream.Config{
		BaseURL:           baseURL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             1000,
	}, log)

	tokens := auth.NewStore(nil)
	flow := auth.NewFlow(client, tokens, persist, AppSecret, log)
	session := usecase.NewSession(tokens, client, persist, usecase.SessionConfig{TargetCurrency: "BDT"}, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	httpadapter.RegisterRoutes(e, httpadapter.NewHandler(session, client))

	return &Stack{
		Echo:    e,
		Client:  client,
		Tokens:  tokens,
		Flow:    flow,
		Session: session,
		Persist: persist,
	}
}

// Do executes one request against the stack and returns the recorder.
func (s *Stack) Do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

// DecodeView unpacks a successful view payload from a response.
func DecodeView(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.ViewDTO {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "expected a success envelope, got %s", rec.Body.String())

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var view httpadapter.ViewDTO
	require.NoError(t, json.Unmarshal(data, &view))
	return view
}

// DecodeError unpacks the error detail from a failed response.
func DecodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	return *envelope.Error
}

// searchBody is the canonical one-way search request.
func searchBody() map[string]interface{} {
	return map[string]interface{}{
		"fromCode":      "DAC",
		"toCode":        "CXB",
		"departureDate": "2025-09-21",
		"adults":        1,
	}
}
