// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/mosdac-chat/internal/api"
	"github.com/jeranaias/mosdac-chat/internal/api/apitest"
	"github.com/jeranaias/mosdac-chat/internal/model"
	"github.com/jeranaias/mosdac-chat/internal/suggest"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type note struct {
	Level Level
	Text  string
}

type recorder struct {
	mu     sync.Mutex
	notes  []note
	opened []Dialog
	closed []Dialog
	events []Event
}

func (r *recorder) Notify(level Level, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{level, text})
}

func (r *recorder) Open(d Dialog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, d)
}

func (r *recorder) Close(d Dialog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, d)
}

func (r *recorder) listen(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Notes() []note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]note(nil), r.notes...)
}

func (r *recorder) Events(kind EventKind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	backend *apitest.Backend
	rec     *recorder
	sess    *Session
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	b := apitest.NewBackend()
	srv := apitest.NewServer(t, b)
	return newFixtureWithURL(t, b, srv.URL, opts)
}

func newFixtureWithURL(t *testing.T, b *apitest.Backend, url string, opts Options) *fixture {
	t.Helper()
	rec := &recorder{}
	opts.Notifier = rec
	opts.Dialogs = rec
	if opts.ProgressInterval == 0 {
		opts.ProgressInterval = 5 * time.Millisecond
	}
	sess := New(api.NewClient(url).WithTimeout(5*time.Second), opts)
	sess.SetListener(rec.listen)
	return &fixture{backend: b, rec: rec, sess: sess}
}

func closedServerURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// =============================================================================
// SEND FLOW
// =============================================================================

func TestSend_EmptyQueryIsRejectedLocally(t *testing.T) {
	f := newFixture(t, Options{})

	for _, q := range []string{"", "   ", "\t\n"} {
		msg, err := f.sess.Send(context.Background(), q)
		assert.Nil(t, msg)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}

	assert.Equal(t, 1, f.sess.Transcript().Len())
	assert.Zero(t, f.backend.Calls(api.PathAsk))
	notes := f.rec.Notes()
	require.Len(t, notes, 3)
	assert.Equal(t, note{LevelWarning, "Please enter a question."}, notes[0])
	assert.Empty(t, f.rec.Events(EventLoading))
}

func TestSend_Success(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.OnAsk(func(q string) apitest.Reply {
		return apitest.AskOK("Answer about "+q, "INSAT-3DR", "Satellite imagery")
	})

	msg, err := f.sess.Send(context.Background(), "  INSAT-3D  ")
	require.NoError(t, err)
	assert.Equal(t, "Answer about INSAT-3D", msg.Text)
	assert.False(t, msg.IsError)

	msgs := f.sess.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.RoleUser, msgs[1].Role)
	assert.Equal(t, "INSAT-3D", msgs[1].Text)
	assert.Equal(t, model.RoleBot, msgs[2].Role)

	assert.Equal(t, []string{"INSAT-3D"}, f.backend.Queries())
	assert.Equal(t, []string{"INSAT-3DR", "Satellite imagery"}, f.sess.Suggestions())
	assert.Equal(t, []note{{LevelSuccess, "Response received!"}}, f.rec.Notes())
	assert.False(t, f.sess.Loading())
	assert.Zero(t, f.sess.Progress())
	assert.NotEmpty(t, f.rec.Events(EventScrollToBottom))
}

func TestSend_EmptySuggestionsKeepPrevious(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.OnAsk(func(string) apitest.Reply { return apitest.AskOK("first", "keep me") })
	_, err := f.sess.Send(context.Background(), "one")
	require.NoError(t, err)

	f.backend.OnAsk(func(string) apitest.Reply { return apitest.AskOK("second") })
	_, err = f.sess.Send(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, []string{"keep me"}, f.sess.Suggestions())
	assert.Len(t, f.rec.Events(EventSuggestions), 1)
}

func TestSend_ApplicationError(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.OnAsk(func(string) apitest.Reply {
		return apitest.AskError(http.StatusServiceUnavailable, apitest.UnavailableText)
	})
	f.sess.suggestions.Replace([]string{"old"})

	msg, err := f.sess.Send(context.Background(), "cyclone")
	require.Error(t, err)
	assert.True(t, api.IsApplication(err))

	assert.True(t, msg.IsError)
	assert.Equal(t, "Error: "+apitest.UnavailableText, msg.Text)
	assert.Equal(t, []note{{LevelError, apitest.UnavailableText}}, f.rec.Notes())
	assert.Equal(t, []string{"old"}, f.sess.Suggestions())
	assert.Equal(t, 3, f.sess.Transcript().Len())
	assert.False(t, f.sess.Loading())
}

func TestSend_TransportError(t *testing.T) {
	f := newFixtureWithURL(t, apitest.NewBackend(), closedServerURL(), Options{})

	msg, err := f.sess.Send(context.Background(), "cyclone")
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))

	assert.True(t, msg.IsError)
	assert.True(t, strings.HasPrefix(msg.Text, "Error: "))
	assert.Contains(t, msg.Text, err.Error())

	notes := f.rec.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelError, notes[0].Level)
	assert.Equal(t, msg.Text, notes[0].Text)
	assert.Zero(t, f.sess.Progress())
	assert.False(t, f.sess.Loading())
}

func TestSend_MalformedResponseIsTransportError(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.OnAsk(func(string) apitest.Reply {
		return apitest.Malformed(http.StatusTooManyRequests, "<h1>Too Many Requests</h1>")
	})

	msg, err := f.sess.Send(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.True(t, msg.IsError)
	assert.Equal(t, 3, f.sess.Transcript().Len())
}

func TestSend_LoadingAndProgress(t *testing.T) {
	f := newFixture(t, Options{Variant: VariantFull})
	f.backend.OnAsk(func(string) apitest.Reply {
		return apitest.AskOK("slow answer").After(150 * time.Millisecond)
	})

	_, err := f.sess.Send(context.Background(), "q")
	require.NoError(t, err)

	loading := f.rec.Events(EventLoading)
	require.Len(t, loading, 2)
	assert.True(t, loading[0].Loading)
	assert.False(t, loading[1].Loading)

	progress := f.rec.Events(EventProgress)
	require.NotEmpty(t, progress)
	prev := 0
	for _, e := range progress[:len(progress)-1] {
		assert.Zero(t, e.Progress%ProgressStep)
		assert.LessOrEqual(t, e.Progress, ProgressMax)
		assert.GreaterOrEqual(t, e.Progress, prev)
		prev = e.Progress
	}
	assert.Equal(t, ProgressMax, prev, "progress should reach the cap during a slow request")
	assert.Zero(t, progress[len(progress)-1].Progress)
	assert.Zero(t, f.sess.Progress())
}

func TestSend_BasicVariantHasNoProgress(t *testing.T) {
	f := newFixture(t, Options{Variant: VariantBasic})
	f.backend.OnAsk(func(string) apitest.Reply {
		return apitest.AskOK("answer").After(30 * time.Millisecond)
	})

	_, err := f.sess.Send(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, f.rec.Events(EventProgress))
	assert.Len(t, f.rec.Events(EventLoading), 2)
}

func TestSend_OverlappingRequests(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.OnAsk(func(q string) apitest.Reply {
		if q == "slow" {
			return apitest.AskOK("slow answer").After(150 * time.Millisecond)
		}
		return apitest.AskOK("fast answer").After(20 * time.Millisecond)
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = f.sess.Send(context.Background(), "slow")
	}()

	require.Eventually(t, f.sess.Loading, time.Second, time.Millisecond)
	_, err := f.sess.Send(context.Background(), "fast")
	require.NoError(t, err)
	assert.True(t, f.sess.Loading(), "slow request still in flight")

	wg.Wait()
	assert.False(t, f.sess.Loading())

	msgs := f.sess.Messages()
	require.Len(t, msgs, 5)
	var users, bots int
	for _, m := range msgs[1:] {
		switch m.Role {
		case model.RoleUser:
			users++
		case model.RoleBot:
			bots++
		}
	}
	assert.Equal(t, 2, users)
	assert.Equal(t, 2, bots)
	assert.Equal(t, "slow answer", msgs[4].Text, "replies land in completion order")

	loading := f.rec.Events(EventLoading)
	var offs int
	for _, e := range loading {
		if !e.Loading {
			offs++
		}
	}
	assert.Equal(t, 1, offs, "loading turns off only after the last request")
}

func TestSend_OverlappingRequestsShareProgress(t *testing.T) {
	f := newFixture(t, Options{Variant: VariantFull, ProgressInterval: 10 * time.Millisecond})
	f.backend.OnAsk(func(q string) apitest.Reply {
		if q == "slow" {
			return apitest.AskOK("slow answer").After(200 * time.Millisecond)
		}
		return apitest.AskOK("fast answer").After(60 * time.Millisecond)
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = f.sess.Send(context.Background(), "slow")
	}()
	require.Eventually(t, f.sess.Loading, time.Second, time.Millisecond)

	_, err := f.sess.Send(context.Background(), "fast")
	require.NoError(t, err)
	assert.NotZero(t, f.sess.Progress(), "finishing one request must not reset the bar")

	wg.Wait()
	progress := f.rec.Events(EventProgress)
	require.NotEmpty(t, progress)
	prev := 0
	for _, e := range progress[:len(progress)-1] {
		assert.GreaterOrEqual(t, e.Progress, prev, "bar never moves backwards while requests overlap")
		prev = e.Progress
	}
	assert.Zero(t, progress[len(progress)-1].Progress)
	assert.Zero(t, f.sess.Progress())
}

func TestSend_LogsQueryPreview(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixture(t, Options{Logger: zap.New(core)})

	long := strings.Repeat("sea surface temperature ", 10)
	_, err := f.sess.Send(context.Background(), long)
	require.NoError(t, err)

	sent := logs.FilterMessage("question sent").All()
	require.Len(t, sent, 1)
	query := sent[0].ContextMap()["query"].(string)
	assert.Len(t, []rune(query), QueryLogPreview)
	assert.True(t, strings.HasSuffix(query, "..."))
}

func TestSelectSuggestionAt(t *testing.T) {
	f := newFixture(t, Options{})
	f.sess.suggestions.Replace([]string{"Cyclone tracking"})

	_, err := f.sess.SelectSuggestionAt(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cyclone tracking"}, f.backend.Queries())

	_, err = f.sess.SelectSuggestionAt(context.Background(), 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

// =============================================================================
// CLEAR
// =============================================================================

func TestClear_Success(t *testing.T) {
	for _, variant := range []Variant{VariantBasic, VariantFull} {
		t.Run(string(variant), func(t *testing.T) {
			f := newFixture(t, Options{Variant: variant})
			_, err := f.sess.Send(context.Background(), "cyclone")
			require.NoError(t, err)
			require.NotEmpty(t, f.sess.Suggestions())

			require.NoError(t, f.sess.Clear(context.Background()))

			msgs := f.sess.Messages()
			require.Len(t, msgs, 1)
			assert.Equal(t, variant.Welcome(), msgs[0].Text)
			assert.Equal(t, model.RoleBot, msgs[0].Role)
			assert.Empty(t, f.sess.Suggestions())

			notes := f.rec.Notes()
			assert.Equal(t, note{LevelSuccess, apitest.ClearedText}, notes[len(notes)-1])
		})
	}
}

func TestClear_FailureKeepsTranscript(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sess.Send(context.Background(), "cyclone")
	require.NoError(t, err)
	f.backend.OnClear(func() apitest.Reply {
		return apitest.StatusError(http.StatusInternalServerError, apitest.ClearFailedText)
	})

	err = f.sess.Clear(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, f.sess.Transcript().Len())
	assert.NotEmpty(t, f.sess.Suggestions())

	notes := f.rec.Notes()
	assert.Equal(t, note{LevelError, apitest.ClearFailedText}, notes[len(notes)-1])
}

func TestClear_TransportFailure(t *testing.T) {
	f := newFixtureWithURL(t, apitest.NewBackend(), closedServerURL(), Options{})

	err := f.sess.Clear(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, f.sess.Transcript().Len())

	notes := f.rec.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelError, notes[0].Level)
	assert.True(t, strings.HasPrefix(notes[0].Text, "Error: "))
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExportFile_OneLinePerMessage(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, Options{ExportDir: dir})
	f.backend.OnAsk(func(string) apitest.Reply { return apitest.AskOK("line one\nline two") })
	_, err := f.sess.Send(context.Background(), "INSAT-3D")
	require.NoError(t, err)

	path, err := f.sess.ExportFile("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mosdac_chat_history.txt"), path)
	assert.Equal(t, 1, f.backend.Calls(api.PathAsk), "export makes no request")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, f.sess.Transcript().Len())

	pattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] (User|Bot): .+$`)
	for _, line := range lines {
		assert.Regexp(t, pattern, line)
	}
	assert.True(t, strings.HasSuffix(lines[1], "] User: INSAT-3D"))
	assert.True(t, strings.HasSuffix(lines[2], "] Bot: line one line two"))

	notes := f.rec.Notes()
	assert.Equal(t, note{LevelSuccess, "Chat history exported!"}, notes[len(notes)-1])
}

func TestExportFile_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	f := newFixture(t, Options{})
	_, err := f.sess.ExportFile(filepath.Join(blocker, "sub"))
	require.Error(t, err)

	notes := f.rec.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, LevelError, notes[0].Level)
}

// =============================================================================
// FEEDBACK
// =============================================================================

func TestExportFile_ConfiguredFormat(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, Options{ExportDir: dir, ExportFormat: "md"})
	_, err := f.sess.Send(context.Background(), "ocean")
	require.NoError(t, err)

	path, err := f.sess.ExportFile("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mosdac_chat_history.md"), path)

	require.Error(t, f.sess.SetExportFormat("pdf"))
	assert.Equal(t, "md", f.sess.ExportFormat())

	require.NoError(t, f.sess.SetExportFormat("json"))
	path, err = f.sess.ExportFile("")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ocean"`)
}

func TestNew_UnknownExportFormatFallsBackToText(t *testing.T) {
	f := newFixture(t, Options{ExportFormat: "pdf"})
	assert.Equal(t, DefaultExportFormat, f.sess.ExportFormat())
}

func TestSubmitFeedback_Empty(t *testing.T) {
	f := newFixture(t, Options{})

	err := f.sess.SubmitFeedback(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyFeedback)
	assert.Zero(t, f.backend.Calls(api.PathFeedback))
	assert.Equal(t, []note{{LevelWarning, "Please enter feedback."}}, f.rec.Notes())
	assert.Empty(t, f.rec.closed)
}

func TestSubmitFeedback_SuccessClosesDialog(t *testing.T) {
	f := newFixture(t, Options{})
	require.True(t, f.sess.OpenFeedback())

	require.NoError(t, f.sess.SubmitFeedback(context.Background(), " Very helpful "))
	assert.Equal(t, []string{"Very helpful"}, f.backend.Feedbacks())
	assert.Equal(t, []Dialog{DialogFeedback}, f.rec.opened)
	assert.Equal(t, []Dialog{DialogFeedback}, f.rec.closed)
	assert.Equal(t, []note{{LevelSuccess, apitest.FeedbackOKText}}, f.rec.Notes())
}

func TestSubmitFeedback_FailureKeepsDialogOpen(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.OnFeedback(func(string) apitest.Reply {
		return apitest.StatusError(http.StatusInternalServerError, apitest.FeedbackFailedText)
	})

	err := f.sess.SubmitFeedback(context.Background(), "hello")
	require.Error(t, err)
	assert.Empty(t, f.rec.closed)
	assert.Equal(t, []note{{LevelError, apitest.FeedbackFailedText}}, f.rec.Notes())
}

func TestOpenFeedback_DisabledInBasic(t *testing.T) {
	f := newFixture(t, Options{Variant: VariantBasic})
	assert.False(t, f.sess.OpenFeedback())
	assert.Empty(t, f.rec.opened)
}

// =============================================================================
// START / SUGGEST
// =============================================================================

func TestStart_WelcomeAndDegradedWarning(t *testing.T) {
	f := newFixture(t, Options{WelcomeDialog: true, StaticSuggestions: true})

	f.sess.Start()
	f.sess.Start()

	assert.Equal(t, []Dialog{DialogWelcome, DialogWelcome}, f.rec.opened)
	assert.Equal(t, []note{{LevelWarning, suggest.DegradedMessage}}, f.rec.Notes())
	assert.Equal(t, []string{"Cyclone tracking"}, f.sess.Suggest(context.Background(), "CYCL"))
	assert.Zero(t, f.backend.Calls(api.PathAsk))
}

func TestStart_BasicSkipsSearchWarning(t *testing.T) {
	f := newFixture(t, Options{Variant: VariantBasic, StaticSuggestions: true})
	f.sess.Start()
	assert.Empty(t, f.rec.Notes())
	assert.Empty(t, f.rec.opened)
}

func TestSuggest_Dynamic(t *testing.T) {
	f := newFixture(t, Options{})

	assert.Nil(t, f.sess.Suggest(context.Background(), "c"))
	assert.Contains(t, f.sess.Suggest(context.Background(), "cyclone"), "Cyclone tracking")
	assert.Equal(t, 1, f.backend.Calls(api.PathAsk))
	assert.Equal(t, 1, f.sess.Transcript().Len(), "search does not touch the transcript")
}

func TestSetFeatures(t *testing.T) {
	f := newFixture(t, Options{Variant: VariantBasic})
	assert.False(t, f.sess.Features().Progress)

	f.sess.SetFeatures(FeaturesFor(VariantFull))
	assert.True(t, f.sess.Features().Progress)
	assert.True(t, f.sess.OpenFeedback())
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Basic ")
	require.NoError(t, err)
	assert.Equal(t, VariantBasic, v)

	v, err = ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, VariantFull, v)

	_, err = ParseVariant("fancy")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyQuery))
}
