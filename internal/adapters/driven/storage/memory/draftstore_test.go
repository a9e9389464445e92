package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

func testCommand(title string) domain.DraftCommand {
	tree := domain.NewSectionTree(domain.DefaultOutlinePolicy(), nil)
	_, _ = tree.InsertEnd(0)
	_, _ = tree.InsertEnd(1)
	return domain.CreateCommandFromModel(domain.DraftMeta{ProviderKey: "provider-1", Title: title}, tree)
}

func TestDraftStore_CreateAndGet(t *testing.T) {
	store := NewDraftStore()
	ctx := context.Background()

	created, err := store.CreateDraft(ctx, testCommand("Licence"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.Key)
	assert.Equal(t, 1, created.Version)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.GetDraft(ctx, created.Key)
	require.NoError(t, err)
	assert.Equal(t, "Licence", got.Title)
	assert.Equal(t, "provider-1", got.ProviderKey)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "1.1", got.Sections[1].Index)
}

func TestDraftStore_CreateIgnoresCommandID(t *testing.T) {
	store := NewDraftStore()
	cmd := testCommand("x")
	cmd.ID = "chosen-by-client"

	created, err := store.CreateDraft(context.Background(), cmd)
	require.NoError(t, err)
	assert.NotEqual(t, "chosen-by-client", created.Key)
}

func TestDraftStore_Update(t *testing.T) {
	store := NewDraftStore()
	ctx := context.Background()
	created, err := store.CreateDraft(ctx, testCommand("v1"))
	require.NoError(t, err)

	cmd := testCommand("v2")
	cmd.Sections = cmd.Sections[:1]
	updated, err := store.UpdateDraft(ctx, created.Key, cmd)
	require.NoError(t, err)

	assert.Equal(t, created.Key, updated.Key)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "v2", updated.Title)
	assert.Len(t, updated.Sections, 1)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestDraftStore_UpdateNotFound(t *testing.T) {
	store := NewDraftStore()
	_, err := store.UpdateDraft(context.Background(), "missing", testCommand("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_GetNotFound(t *testing.T) {
	store := NewDraftStore()
	_, err := store.GetDraft(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_ListNewestFirst(t *testing.T) {
	store := NewDraftStore()
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ctx := context.Background()

	a, err := store.CreateDraft(ctx, testCommand("a"))
	require.NoError(t, err)
	b, err := store.CreateDraft(ctx, testCommand("b"))
	require.NoError(t, err)
	_, err = store.UpdateDraft(ctx, a.Key, testCommand("a2"))
	require.NoError(t, err)

	list, err := store.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.Key, list[0].Key)
	assert.Equal(t, b.Key, list[1].Key)
}

func TestDraftStore_Delete(t *testing.T) {
	store := NewDraftStore()
	ctx := context.Background()
	created, err := store.CreateDraft(ctx, testCommand("x"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteDraft(ctx, created.Key))
	require.NoError(t, store.DeleteDraft(ctx, created.Key))

	_, err = store.GetDraft(ctx, created.Key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftStore_DataIsolation(t *testing.T) {
	store := NewDraftStore()
	ctx := context.Background()
	cmd := testCommand("x")

	created, err := store.CreateDraft(ctx, cmd)
	require.NoError(t, err)

	cmd.Sections[0].Title = "mutated command"
	created.Sections[0].Options[0].Body = "mutated result"

	got, err := store.GetDraft(ctx, created.Key)
	require.NoError(t, err)
	assert.Equal(t, domain.PlaceholderSectionTitle, got.Sections[0].Title)
	assert.Equal(t, domain.PlaceholderOptionBody, got.Sections[0].Options[0].Body)
}
