package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"pgregory.net/rapid"
)

func validText() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9 .,!?]{2,60}`)
}

func shortText() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9]{0,1}`)
}

func noteBody(title, description string) string {
	data, _ := json.Marshal(map[string]string{"title": title, "description": description})
	return string(data)
}

func decodeNote(t *rapid.T, body []byte) Note {
	var n Note
	if err := json.Unmarshal(body, &n); err != nil {
		t.Fatalf("decode note: %v (%s)", err, body)
	}
	return n
}

func listLen(t *rapid.T, mux http.Handler) int {
	rec := do(t, mux, http.MethodGet, "/notes/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	var notes []Note
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return len(notes)
}

func TestProperty_CreateThenReadRoundtrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mux := newTestMux(NewMemoryStore())
		title := validText().Draw(t, "title")
		description := validText().Draw(t, "description")

		rec := do(t, mux, http.MethodPost, "/notes/", noteBody(title, description))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status %d: %s", rec.Code, rec.Body)
		}
		created := decodeNote(t, rec.Body.Bytes())

		rec = do(t, mux, http.MethodGet, fmt.Sprintf("/notes/%d", created.ID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("read status %d", rec.Code)
		}
		got := decodeNote(t, rec.Body.Bytes())
		if got.Title != title || got.Description != description {
			t.Fatalf("read %+v, want title=%q description=%q", got, title, description)
		}
	})
}

func TestProperty_InvalidPayloadChangesNothing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := NewMemoryStore()
		mux := newTestMux(store)

		rec := do(t, mux, http.MethodPost, "/notes/", noteBody("original", "original"))
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed status %d", rec.Code)
		}

		var title, description string
		if rapid.Bool().Draw(t, "shortTitle") {
			title = shortText().Draw(t, "title")
			description = validText().Draw(t, "description")
		} else {
			title = validText().Draw(t, "title")
			description = shortText().Draw(t, "description")
		}
		body := noteBody(title, description)

		if rec := do(t, mux, http.MethodPost, "/notes/", body); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("create status %d, want 422", rec.Code)
		}
		if rec := do(t, mux, http.MethodPut, "/notes/1/", body); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("update status %d, want 422", rec.Code)
		}

		if n := listLen(t, mux); n != 1 {
			t.Fatalf("list has %d notes, want 1", n)
		}
		rec = do(t, mux, http.MethodGet, "/notes/1", "")
		if got := decodeNote(t, rec.Body.Bytes()); got.Title != "original" {
			t.Fatalf("note modified: %+v", got)
		}
	})
}

func TestProperty_NonPositiveIDNeverReachesStore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := &recordingStore{MemoryStore: NewMemoryStore()}
		mux := newTestMux(store)
		id := rapid.Int64Max(0).Draw(t, "id")
		path := strconv.FormatInt(id, 10)

		if rec := do(t, mux, http.MethodGet, "/notes/"+path, ""); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("read status %d, want 422", rec.Code)
		}
		if rec := do(t, mux, http.MethodPut, "/notes/"+path+"/", noteBody("foo", "bar")); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("update status %d, want 422", rec.Code)
		}
		if store.calls != 0 {
			t.Fatalf("store called %d times", store.calls)
		}
	})
}

func TestProperty_UnknownIDIsNotFound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := NewMemoryStore()
		mux := newTestMux(store)
		n := rapid.IntRange(0, 5).Draw(t, "n")
		for i := 0; i < n; i++ {
			do(t, mux, http.MethodPost, "/notes/", noteBody("title", "description"))
		}
		id := rapid.Int64Range(int64(n)+1, 1<<40).Draw(t, "id")
		want := fmt.Sprintf(`{"detail":"Note not found for id %d"}`+"\n", id)

		rec := do(t, mux, http.MethodGet, fmt.Sprintf("/notes/%d", id), "")
		if rec.Code != http.StatusNotFound || rec.Body.String() != want {
			t.Fatalf("read: %d %s", rec.Code, rec.Body)
		}
		rec = do(t, mux, http.MethodPut, fmt.Sprintf("/notes/%d/", id), noteBody("foo", "bar"))
		if rec.Code != http.StatusNotFound || rec.Body.String() != want {
			t.Fatalf("update: %d %s", rec.Code, rec.Body)
		}
	})
}

func TestProperty_ListGrowsWithCreates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mux := newTestMux(NewMemoryStore())
		if n := listLen(t, mux); n != 0 {
			t.Fatalf("empty store lists %d notes", n)
		}

		n := rapid.IntRange(1, 20).Draw(t, "n")
		for i := 0; i < n; i++ {
			rec := do(t, mux, http.MethodPost, "/notes/", noteBody(validText().Draw(t, "title"), validText().Draw(t, "description")))
			if rec.Code != http.StatusCreated {
				t.Fatalf("create status %d", rec.Code)
			}
		}
		if got := listLen(t, mux); got != n {
			t.Fatalf("list has %d notes, want %d", got, n)
		}
	})
}

func TestProperty_UpdateOverwritesAndKeepsID(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mux := newTestMux(NewMemoryStore())
		rec := do(t, mux, http.MethodPost, "/notes/", noteBody(validText().Draw(t, "title"), validText().Draw(t, "description")))
		created := decodeNote(t, rec.Body.Bytes())

		title := validText().Draw(t, "newTitle")
		description := validText().Draw(t, "newDescription")
		rec = do(t, mux, http.MethodPut, fmt.Sprintf("/notes/%d/", created.ID), noteBody(title, description))
		if rec.Code != http.StatusOK {
			t.Fatalf("update status %d", rec.Code)
		}
		if updated := decodeNote(t, rec.Body.Bytes()); updated.ID != created.ID {
			t.Fatalf("update changed id %d -> %d", created.ID, updated.ID)
		}

		rec = do(t, mux, http.MethodGet, fmt.Sprintf("/notes/%d", created.ID), "")
		got := decodeNote(t, rec.Body.Bytes())
		if got.Title != title || got.Description != description {
			t.Fatalf("read %+v after update, want %q/%q", got, title, description)
		}
	})
}

// recordingStore counts calls that reach the underlying store
type recordingStore struct {
	*MemoryStore
	calls int
}

func (s *recordingStore) FindByID(ctx context.Context, id int64) (*Note, error) {
	s.calls++
	return s.MemoryStore.FindByID(ctx, id)
}

func (s *recordingStore) Update(ctx context.Context, id int64, in NoteInput) (int64, error) {
	s.calls++
	return s.MemoryStore.Update(ctx, id, in)
}
