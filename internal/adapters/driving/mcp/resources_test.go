package mcp

import (
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestExtractDraftKey(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid draft URI", uri: "drafter://drafts/abc-123", expected: "abc-123"},
		{name: "listing URI", uri: "drafter://drafts", expected: ""},
		{name: "invalid prefix", uri: "file://drafts/abc-123", expected: ""},
		{name: "nested path", uri: "drafter://drafts/abc/sections", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDraftKey(tt.uri))
		})
	}
}

func TestServer_handleDraftsResource(t *testing.T) {
	server, store, _ := newTestServer(t)
	_, err := store.CreateDraft(ctx(), domain.DraftCommand{
		ProviderKey: "prov-1",
		Title:       "Data licence",
		Sections:    []domain.Section{domain.NewPlaceholderSection(0, 0)},
	})
	require.NoError(t, err)

	result, err := server.handleDraftsResource(ctx(), makeReadResourceRequest("drafter://drafts"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, `"title": "Data licence"`)
	assert.Contains(t, result.Contents[0].Text, `"sections": 1`)
}

func TestServer_handleSessionsResource(t *testing.T) {
	server, _, _ := newTestServer(t)

	result, err := server.handleSessionsResource(ctx(), makeReadResourceRequest("drafter://sessions"))
	require.NoError(t, err)
	assert.Equal(t, "[]", result.Contents[0].Text)

	session := openNew(t, server)
	result, err = server.handleSessionsResource(ctx(), makeReadResourceRequest("drafter://sessions"))
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, session)
	assert.Contains(t, result.Contents[0].Text, `"dirty": true`)
}

func TestServer_handleDraftResource(t *testing.T) {
	t.Run("saved draft", func(t *testing.T) {
		server, store, _ := newTestServer(t)
		draft, err := store.CreateDraft(ctx(), domain.DraftCommand{
			ProviderKey: "prov-1",
			Sections:    []domain.Section{domain.NewPlaceholderSection(0, 0)},
		})
		require.NoError(t, err)

		result, err := server.handleDraftResource(ctx(), makeReadResourceRequest("drafter://drafts/"+draft.Key))
		require.NoError(t, err)

		var cmd domain.DraftCommand
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &cmd))
		assert.Equal(t, draft.Key, cmd.ID)
		require.Len(t, cmd.Sections, 1)
		assert.Equal(t, domain.IconNone, cmd.Sections[0].Options[0].Icon)
		assert.Contains(t, result.Contents[0].Text, `"icon": null`)
	})

	t.Run("open session shows unsaved edits", func(t *testing.T) {
		server, _, _ := newTestServer(t)
		session := openNew(t, server)
		_, saved, err := server.handleSave(ctx(), nil, SessionInput{Session: session})
		require.NoError(t, err)
		_, _, err = server.handleInsert(ctx(), nil, InsertInput{Session: session})
		require.NoError(t, err)

		result, err := server.handleDraftResource(ctx(), makeReadResourceRequest("drafter://drafts/"+saved.Key))
		require.NoError(t, err)

		var cmd domain.DraftCommand
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &cmd))
		assert.Len(t, cmd.Sections, 3)
	})

	t.Run("unknown key", func(t *testing.T) {
		server, _, _ := newTestServer(t)
		_, err := server.handleDraftResource(ctx(), makeReadResourceRequest("drafter://drafts/missing"))
		require.Error(t, err)
	})

	t.Run("malformed URI", func(t *testing.T) {
		server, _, _ := newTestServer(t)
		_, err := server.handleDraftResource(ctx(), makeReadResourceRequest("drafter://other"))
		require.Error(t, err)
	})
}
