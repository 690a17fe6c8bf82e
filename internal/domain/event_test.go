package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow        = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	validTitle     = "Summer meetup"
	validAnnot     = strings.Repeat("a", 40)
	validDesc      = strings.Repeat("d", 40)
	validEventDate = testNow.Add(3 * time.Hour)
)

func newTestEvent(t *testing.T) *Event {
	t.Helper()
	ev, err := NewEvent(uuid.New(), uuid.New(), validTitle, validAnnot, validDesc,
		validEventDate, Location{Lat: 55.75, Lon: 37.62}, false, 10, true, testNow)
	require.NoError(t, err)
	return ev
}

func TestNewEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ev := newTestEvent(t)
		assert.Equal(t, StatePending, ev.State)
		assert.Equal(t, testNow, ev.CreatedOn)
		assert.Nil(t, ev.PublishedOn)
	})

	t.Run("title bounds", func(t *testing.T) {
		_, err := NewEvent(uuid.New(), uuid.New(), "ab", validAnnot, validDesc,
			validEventDate, Location{}, false, 0, true, testNow)
		var ae *AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeValidation, ae.Code)

		_, err = NewEvent(uuid.New(), uuid.New(), strings.Repeat("t", 121), validAnnot, validDesc,
			validEventDate, Location{}, false, 0, true, testNow)
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeValidation, ae.Code)
	})

	t.Run("annotation bounds", func(t *testing.T) {
		_, err := NewEvent(uuid.New(), uuid.New(), validTitle, "too short", validDesc,
			validEventDate, Location{}, false, 0, true, testNow)
		var ae *AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeValidation, ae.Code)
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := NewEvent(uuid.New(), uuid.New(), validTitle, validAnnot, validDesc,
			validEventDate, Location{}, false, -1, true, testNow)
		var ae *AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeValidation, ae.Code)
	})

	t.Run("event date lead time is a conflict", func(t *testing.T) {
		_, err := NewEvent(uuid.New(), uuid.New(), validTitle, validAnnot, validDesc,
			testNow.Add(90*time.Minute), Location{}, false, 0, true, testNow)
		var ae *AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeConflict, ae.Code)
	})
}

func TestApplyPatch(t *testing.T) {
	ev := newTestEvent(t)

	t.Run("nil fields leave event unchanged", func(t *testing.T) {
		before := *ev
		require.NoError(t, ev.ApplyPatch(EventPatch{}))
		assert.Equal(t, before, *ev)
	})

	t.Run("present fields overwrite", func(t *testing.T) {
		title := "Renamed meetup"
		paid := true
		limit := 3
		require.NoError(t, ev.ApplyPatch(EventPatch{Title: &title, Paid: &paid, ParticipantLimit: &limit}))
		assert.Equal(t, "Renamed meetup", ev.Title)
		assert.True(t, ev.Paid)
		assert.Equal(t, 3, ev.ParticipantLimit)
	})

	t.Run("invalid patch value rejected", func(t *testing.T) {
		bad := "x"
		err := ev.ApplyPatch(EventPatch{Title: &bad})
		var ae *AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeValidation, ae.Code)
	})
}

func TestEventStateMachine(t *testing.T) {
	t.Run("publish pending", func(t *testing.T) {
		ev := newTestEvent(t)
		require.NoError(t, ev.Publish(testNow))
		assert.Equal(t, StatePublished, ev.State)
		require.NotNil(t, ev.PublishedOn)
		assert.Equal(t, testNow, *ev.PublishedOn)
	})

	t.Run("publish requires pending", func(t *testing.T) {
		ev := newTestEvent(t)
		require.NoError(t, ev.Publish(testNow))
		assert.Error(t, ev.Publish(testNow))

		ev2 := newTestEvent(t)
		require.NoError(t, ev2.CancelReview())
		assert.Error(t, ev2.Publish(testNow))
	})

	t.Run("publish lead time", func(t *testing.T) {
		ev := newTestEvent(t)
		late := ev.EventDate.Add(-30 * time.Minute)
		err := ev.Publish(late)
		var ae *AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeConflict, ae.Code)
	})

	t.Run("owner review actions blocked when published", func(t *testing.T) {
		ev := newTestEvent(t)
		require.NoError(t, ev.Publish(testNow))
		assert.Error(t, ev.SendToReview())
		assert.Error(t, ev.CancelReview())
		assert.False(t, ev.EditableByOwner())
	})

	t.Run("cancel and resubmit", func(t *testing.T) {
		ev := newTestEvent(t)
		require.NoError(t, ev.CancelReview())
		assert.Equal(t, StateCanceled, ev.State)
		require.NoError(t, ev.SendToReview())
		assert.Equal(t, StatePending, ev.State)
	})

	t.Run("reject", func(t *testing.T) {
		ev := newTestEvent(t)
		require.NoError(t, ev.Reject())
		assert.Equal(t, StateCanceled, ev.State)

		ev2 := newTestEvent(t)
		require.NoError(t, ev2.Publish(testNow))
		assert.Error(t, ev2.Reject())
	})
}

func TestNewRequest(t *testing.T) {
	published := func(limit int, moderation bool) *Event {
		ev := newTestEvent(t)
		ev.ParticipantLimit = limit
		ev.RequestModeration = moderation
		require.NoError(t, ev.Publish(testNow))
		return ev
	}

	t.Run("pending when moderated with limit", func(t *testing.T) {
		req, err := NewRequest(uuid.New(), published(5, true), testNow)
		require.NoError(t, err)
		assert.Equal(t, RequestPending, req.Status)
	})

	t.Run("confirmed without moderation", func(t *testing.T) {
		req, err := NewRequest(uuid.New(), published(5, false), testNow)
		require.NoError(t, err)
		assert.Equal(t, RequestConfirmed, req.Status)
	})

	t.Run("confirmed with zero limit", func(t *testing.T) {
		req, err := NewRequest(uuid.New(), published(0, true), testNow)
		require.NoError(t, err)
		assert.Equal(t, RequestConfirmed, req.Status)
	})

	t.Run("initiator cannot self-request", func(t *testing.T) {
		ev := published(5, true)
		_, err := NewRequest(ev.InitiatorID, ev, testNow)
		var ae *AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeConflict, ae.Code)
	})

	t.Run("unpublished event rejected", func(t *testing.T) {
		ev := newTestEvent(t)
		_, err := NewRequest(uuid.New(), ev, testNow)
		var ae *AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, CodeConflict, ae.Code)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		req, err := NewRequest(uuid.New(), published(5, true), testNow)
		require.NoError(t, err)
		req.Cancel()
		assert.Equal(t, RequestCanceled, req.Status)
		req.Cancel()
		assert.Equal(t, RequestCanceled, req.Status)
	})
}
