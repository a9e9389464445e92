package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

func TestAutosaver_TrackUntrack(t *testing.T) {
	svc, _ := newTestDraftService()
	a := NewAutosaver(svc)
	e1 := svc.New("p", "one", "")
	e2 := svc.New("p", "two", "")

	a.Track(e1)
	a.Track(e1)
	a.Track(e2)
	assert.Equal(t, 2, a.Tracked())

	a.Untrack(e1)
	a.Untrack(e1)
	assert.Equal(t, 1, a.Tracked())
}

func TestAutosaver_SaveDirty(t *testing.T) {
	svc, store := newTestDraftService()
	a := NewAutosaver(svc)
	ctx := context.Background()

	editors := make([]*Editor, 6)
	for i := range editors {
		e := svc.New("p", "draft", "")
		editors[i] = e.(*Editor)
		a.Track(e)
	}

	saved, err := a.SaveDirty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, saved)
	assert.Equal(t, 6, store.creates)

	// Nothing changed since.
	saved, err = a.SaveDirty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, saved)

	_, _ = editors[2].InsertEnd(0)
	saved, err = a.SaveDirty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.Equal(t, 1, store.updates)
}

func TestAutosaver_SaveDirtyReportsErrors(t *testing.T) {
	svc, store := newTestDraftService()
	store.createErr = domain.ErrRateLimited
	a := NewAutosaver(svc)
	a.Track(svc.New("p", "a", ""))
	a.Track(svc.New("p", "b", ""))

	saved, err := a.SaveDirty(context.Background())

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 0, saved)
	assert.Equal(t, 2, store.creates, "every editor is attempted")
}

func TestAutosaver_Empty(t *testing.T) {
	svc, _ := newTestDraftService()
	saved, err := NewAutosaver(svc).SaveDirty(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, saved)
}
