package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), discardLogger())

	created, err := svc.Create(ctx, NoteInput{Title: "something", Description: "something else"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
}

func TestService_CreateRejectsInvalidInput(t *testing.T) {
	store := &stubStore{t: t}
	svc := NewService(store, discardLogger())

	_, err := svc.Create(context.Background(), NoteInput{Title: "x", Description: "valid"})

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, store.calls)
}

func TestService_GetRejectsNonPositiveID(t *testing.T) {
	store := &stubStore{t: t}
	svc := NewService(store, discardLogger())

	for _, id := range []int64{0, -1} {
		_, err := svc.Get(context.Background(), id)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, store.calls)
}

func TestService_UpdateChecksExistenceBeforeWrite(t *testing.T) {
	store := &stubStore{t: t, findByID: func(int64) (*Note, error) { return nil, ErrNoteNotFound }}
	svc := NewService(store, discardLogger())

	_, err := svc.Update(context.Background(), 7, NoteInput{Title: "foo", Description: "bar"})

	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.Equal(t, []string{"find"}, store.calls)
}

func TestService_UpdatePropagatesStoreFailure(t *testing.T) {
	boom := errors.New("boom")
	store := &stubStore{
		t:        t,
		findByID: func(id int64) (*Note, error) { return &Note{ID: id}, nil },
		update:   func(int64, NoteInput) (int64, error) { return 0, boom },
	}
	svc := NewService(store, discardLogger())

	_, err := svc.Update(context.Background(), 3, NoteInput{Title: "foo", Description: "bar"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"find", "update"}, store.calls)
}

func TestService_UpdateOverwrites(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), discardLogger())

	created, err := svc.Create(ctx, NoteInput{Title: "before", Description: "old text"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, NoteInput{Title: "after", Description: "new text"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "new text", got.Description)
}

func TestService_ListNeverNil(t *testing.T) {
	store := &stubStore{t: t, list: func() ([]*Note, error) { return nil, nil }}
	svc := NewService(store, discardLogger())

	notes, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestService_RenderMarkdown(t *testing.T) {
	svc := NewService(NewMemoryStore(), discardLogger())

	html := svc.RenderMarkdown("# Title\n\nsome *emphasis*")
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")

	// raw HTML is not passed through
	assert.NotContains(t, svc.RenderMarkdown("<script>alert(1)</script>"), "<script>")
}
