package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

const (
	uriScheme = "drafter://"
	mimeJSON  = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "drafts",
		Name:        "drafts",
		Description: "List of saved contract drafts",
		MIMEType:    mimeJSON,
	}, s.handleDraftsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions",
		Name:        "sessions",
		Description: "Editing sessions currently open",
		MIMEType:    mimeJSON,
	}, s.handleSessionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "drafts/{key}",
		Name:        "draft-command",
		Description: "Save command of a draft, including unsaved edits of an open session",
		MIMEType:    mimeJSON,
	}, s.handleDraftResource)
}

func (s *Server) handleDraftsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	drafts, err := s.ports.Drafts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}

	type draftInfo struct {
		Key         string    `json:"key"`
		ProviderKey string    `json:"providerKey"`
		Title       string    `json:"title"`
		Sections    int       `json:"sections"`
		Version     int       `json:"version"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}

	infos := make([]draftInfo, len(drafts))
	for i := range drafts {
		d := &drafts[i]
		infos[i] = draftInfo{
			Key:         d.Key,
			ProviderKey: d.ProviderKey,
			Title:       d.Title,
			Sections:    len(d.Sections),
			Version:     d.Version,
			UpdatedAt:   d.UpdatedAt,
		}
	}
	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleSessionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sessionInfo struct {
		Session string `json:"session"`
		Key     string `json:"key,omitempty"`
		Title   string `json:"title"`
		Dirty   bool   `json:"dirty"`
	}

	infos := []sessionInfo{}
	for _, id := range s.sessions.ids() {
		e, ok := s.sessions.get(id)
		if !ok {
			continue
		}
		meta := e.Meta()
		infos = append(infos, sessionInfo{Session: id, Key: meta.Key, Title: meta.Title, Dirty: e.Dirty()})
	}
	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleDraftResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	key := extractDraftKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if editor, ok := s.sessions.byKey(key); ok {
		return jsonResult(req.Params.URI, editor.Export())
	}

	draft, err := s.ports.Drafts.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}
	tree := domain.NewSectionTree(s.ports.Drafts.Policy(), draft.Sections)
	return jsonResult(req.Params.URI, domain.CreateCommandFromModel(draft.Meta(), tree))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractDraftKey extracts the key from drafter://drafts/{key}.
func extractDraftKey(uri string) string {
	const prefix = uriScheme + "drafts/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	key := strings.TrimPrefix(uri, prefix)
	if strings.Contains(key, "/") {
		return ""
	}
	return key
}
