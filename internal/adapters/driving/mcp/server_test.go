package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driven/storage/memory"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/services"
)

func newTestServer(t *testing.T) (*Server, *memory.DraftStore, *services.Autosaver) {
	t.Helper()
	store := memory.NewDraftStore()
	drafts := services.NewDraftService(store, domain.DefaultOutlinePolicy(), nil)
	autosaver := services.NewAutosaver(drafts)
	server, err := NewServer(&Ports{
		Drafts:    drafts,
		Autosaver: autosaver,
	})
	require.NoError(t, err)
	return server, store, autosaver
}

func TestNewServer(t *testing.T) {
	t.Run("nil draft service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDraftService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, _, _ := newTestServer(t)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("drafts only is valid", func(t *testing.T) {
		drafts := services.NewDraftService(memory.NewDraftStore(), domain.DefaultOutlinePolicy(), nil)
		ports := &Ports{Drafts: drafts}
		assert.NoError(t, ports.Validate())
	})

	t.Run("missing drafts is invalid", func(t *testing.T) {
		ports := &Ports{Autosaver: services.NewAutosaver(nil)}
		assert.ErrorIs(t, ports.Validate(), ErrMissingDraftService)
	})
}

func TestServer_closeAll(t *testing.T) {
	server, store, autosaver := newTestServer(t)

	_, _, err := server.handleOpen(ctx(), nil, OpenInput{ProviderKey: "prov-1"})
	require.NoError(t, err)
	_, _, err = server.handleOpen(ctx(), nil, OpenInput{ProviderKey: "prov-2"})
	require.NoError(t, err)
	require.Equal(t, 2, autosaver.Tracked())

	server.closeAll()

	assert.Equal(t, 0, autosaver.Tracked())
	assert.Empty(t, server.sessions.ids())

	// Unsaved sessions are written before they are dropped.
	drafts, err := store.ListDrafts(t.Context())
	require.NoError(t, err)
	assert.Len(t, drafts, 2)
}

func TestServer_closeAll_SkipsCleanSessions(t *testing.T) {
	server, store, _ := newTestServer(t)

	_, out, err := server.handleOpen(ctx(), nil, OpenInput{ProviderKey: "prov-1"})
	require.NoError(t, err)
	_, _, err = server.handleSave(ctx(), nil, SessionInput{Session: out.Session})
	require.NoError(t, err)

	server.closeAll()

	drafts, err := store.ListDrafts(t.Context())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, 1, drafts[0].Version)
}
