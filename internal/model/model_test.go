// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "User"},
		{RoleBot, "Bot"},
		{Role("other"), "other"},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.role.DisplayName())
		})
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_AssignsIdentity(t *testing.T) {
	a := NewUserMessage("hello")
	b := NewUserMessage("hello")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, RoleUser, a.Role)
	assert.False(t, a.IsError)
	assert.WithinDuration(t, time.Now(), a.Timestamp, time.Second)
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("Error: boom")
	assert.Equal(t, RoleBot, msg.Role)
	assert.True(t, msg.IsError)
}

func TestMessage_Line(t *testing.T) {
	msg := Message{
		Role:      RoleBot,
		Text:      "  INSAT-3D is a\nmeteorological\r\n\nsatellite.  ",
		Timestamp: time.Date(2025, 7, 15, 20, 0, 5, 0, time.Local),
	}

	assert.Equal(t, "[20:00:05] Bot: INSAT-3D is a meteorological satellite.", msg.Line())
	assert.NotContains(t, msg.Line(), "\n")
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("Oceanographic satellites")
	assert.Equal(t, "Oceanographic satellites", msg.Preview(40))
	assert.Equal(t, "Ocean...", msg.Preview(8))
	assert.Equal(t, "Oc", msg.Preview(2))
	assert.Equal(t, "", msg.Preview(0))
	assert.Equal(t, "", msg.Preview(-1))
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestNewTranscript_HoldsWelcome(t *testing.T) {
	tr := NewTranscript("welcome")

	require.Equal(t, 1, tr.Len())
	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, RoleBot, last.Role)
	assert.Equal(t, "welcome", last.Text)
}

func TestTranscript_AppendPreservesOrder(t *testing.T) {
	tr := NewTranscript("welcome")
	tr.Append(NewUserMessage("one"))
	tr.Append(NewBotMessage("two"))

	snap := tr.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "one", snap[1].Text)
	assert.Equal(t, "two", snap[2].Text)
}

func TestTranscript_ResetLeavesOneMessage(t *testing.T) {
	tr := NewTranscript("welcome")
	for i := 0; i < 5; i++ {
		tr.Append(NewUserMessage("q"))
	}
	before := tr.Version()

	tr.Reset("fresh")

	snap := tr.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "fresh", snap[0].Text)
	assert.Greater(t, tr.Version(), before)
}

func TestTranscript_SnapshotIsCopy(t *testing.T) {
	tr := NewTranscript("welcome")
	snap := tr.Snapshot()
	snap[0].Text = "mutated"

	last, _ := tr.Last()
	assert.Equal(t, "welcome", last.Text)
}

func TestTranscript_ConcurrentAppend(t *testing.T) {
	tr := NewTranscript("welcome")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Append(NewUserMessage("q"))
			_ = tr.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 51, tr.Len())
}

// =============================================================================
// SUGGESTION LIST TESTS
// =============================================================================

func TestSuggestionList_ReplaceAndClear(t *testing.T) {
	var s SuggestionList
	s.Replace([]string{"INSAT-3D", "", "Cyclone tracking"})

	assert.Equal(t, []string{"INSAT-3D", "Cyclone tracking"}, s.Items())
	item, ok := s.At(1)
	assert.True(t, ok)
	assert.Equal(t, "Cyclone tracking", item)
	_, ok = s.At(2)
	assert.False(t, ok)

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, strings.Join(s.Items(), ""))
}
