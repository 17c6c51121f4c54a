// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mosdac-chat/internal/api"
	"github.com/jeranaias/mosdac-chat/internal/api/apitest"
)

func newTestClient(t *testing.T, b *apitest.Backend) *api.Client {
	t.Helper()
	srv := apitest.NewServer(t, b)
	return api.NewClient(srv.URL).WithTimeout(5 * time.Second)
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAsk_Success(t *testing.T) {
	b := apitest.NewBackend().OnAsk(func(q string) apitest.Reply {
		return apitest.AskOK("answer to "+q, "one", "two")
	})
	client := newTestClient(t, b)

	resp, err := client.Ask(context.Background(), "INSAT-3D")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "answer to INSAT-3D", resp.Response)
	assert.Equal(t, []string{"one", "two"}, resp.Suggestions)
	assert.Equal(t, []string{"INSAT-3D"}, b.Queries())
}

func TestAsk_ApplicationErrorDecodedFromErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		text string
	}{
		{"bad request", http.StatusBadRequest, apitest.EmptyQueryText},
		{"internal error", http.StatusInternalServerError, apitest.InternalErrorText},
		{"unavailable", http.StatusServiceUnavailable, apitest.UnavailableText},
		{"error with 200", http.StatusOK, "model overloaded"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := apitest.NewBackend().OnAsk(func(string) apitest.Reply {
				return apitest.AskError(tc.code, tc.text)
			})
			client := newTestClient(t, b)

			resp, err := client.Ask(context.Background(), "q")
			require.Error(t, err)
			require.NotNil(t, resp)

			var appErr *api.ApplicationError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tc.code, appErr.HTTPStatus)
			assert.Equal(t, tc.text, appErr.Message)
			assert.Equal(t, tc.text, err.Error())
			assert.True(t, api.IsApplication(err))
			assert.False(t, api.IsTransport(err))
		})
	}
}

func TestAsk_MalformedBodyIsTransportError(t *testing.T) {
	b := apitest.NewBackend().OnAsk(func(string) apitest.Reply {
		return apitest.Malformed(http.StatusTooManyRequests, "<html>Too Many Requests</html>")
	})
	client := newTestClient(t, b)

	resp, err := client.Ask(context.Background(), "q")
	assert.Nil(t, resp)
	require.Error(t, err)

	var tErr *api.TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "decode", tErr.Op)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestAsk_ConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := api.NewClient(url).WithTimeout(2 * time.Second)
	_, err := client.Ask(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.False(t, api.IsApplication(err))
}

func TestAsk_MissingStatusIsApplicationError(t *testing.T) {
	b := apitest.NewBackend().OnAsk(func(string) apitest.Reply {
		return apitest.Reply{Code: http.StatusOK, Body: map[string]string{"response": "partial"}}
	})
	client := newTestClient(t, b)

	_, err := client.Ask(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, api.IsApplication(err))
	assert.Equal(t, "partial", api.ServerMessage(err))
}

func TestAsk_ContextCancelled(t *testing.T) {
	b := apitest.NewBackend().OnAsk(func(string) apitest.Reply {
		return apitest.AskOK("slow").After(2 * time.Second)
	})
	client := newTestClient(t, b)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Ask(ctx, "q")
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestAsk_SendsJSONBody(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","response":"ok"}`))
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL + "/").Ask(context.Background(), "Weather data")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"Weather data"}`, gotBody)
	assert.Equal(t, "application/json", gotType)
}

func TestAsk_OversizedBodyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","response":"`))
		_, _ = w.Write([]byte(strings.Repeat("x", api.MaxResponseSize)))
		_, _ = w.Write([]byte(`"}`))
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL).Ask(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.Contains(t, err.Error(), "exceeds")
}

func TestAsk_Concurrent(t *testing.T) {
	client := newTestClient(t, apitest.NewBackend())

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Ask(context.Background(), "cyclone"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent ask failed: %v", err)
	}
}

// =============================================================================
// CLEAR / FEEDBACK TESTS
// =============================================================================

func TestClear(t *testing.T) {
	b := apitest.NewBackend()
	client := newTestClient(t, b)

	resp, err := client.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, apitest.ClearedText, resp.Response)
	assert.Equal(t, 1, b.Calls(api.PathClear))

	b.OnClear(func() apitest.Reply {
		return apitest.StatusError(http.StatusInternalServerError, apitest.ClearFailedText)
	})
	_, err = client.Clear(context.Background())
	require.Error(t, err)
	assert.Equal(t, apitest.ClearFailedText, api.ServerMessage(err))
}

func TestFeedback(t *testing.T) {
	b := apitest.NewBackend()
	client := newTestClient(t, b)

	resp, err := client.Feedback(context.Background(), "great answers")
	require.NoError(t, err)
	assert.Equal(t, apitest.FeedbackOKText, resp.Response)
	assert.Equal(t, []string{"great answers"}, b.Feedbacks())
}

func TestFeedback_ServerRejectsBlank(t *testing.T) {
	client := newTestClient(t, apitest.NewBackend())

	_, err := client.Feedback(context.Background(), "   ")
	require.Error(t, err)

	var appErr *api.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, apitest.EmptyFeedbackText, appErr.Message)
}

func TestNewClient_Defaults(t *testing.T) {
	assert.Equal(t, api.DefaultBaseURL, api.NewClient("").BaseURL())
	assert.Equal(t, "http://example.test", api.NewClient("http://example.test/").BaseURL())
}
