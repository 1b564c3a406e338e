package notes

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testStoreContract runs the behaviour every Store backend must share
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("empty store lists nothing", func(t *testing.T) {
		s := newStore(t)
		notes, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("insert then find", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Insert(ctx, NoteInput{Title: "something", Description: "something else"})
		require.NoError(t, err)
		assert.Positive(t, id)

		note, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, note.ID)
		assert.Equal(t, "something", note.Title)
		assert.Equal(t, "something else", note.Description)
		assert.False(t, note.CreatedAt.IsZero())
	})

	t.Run("missing id is ErrNoteNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindByID(ctx, 999)
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})

	t.Run("ids are distinct and listed in insertion order", func(t *testing.T) {
		s := newStore(t)
		var ids []int64
		for _, title := range []string{"first", "second", "third"} {
			id, err := s.Insert(ctx, NoteInput{Title: title, Description: "body"})
			require.NoError(t, err)
			ids = append(ids, id)
		}

		notes, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		for i, n := range notes {
			assert.Equal(t, ids[i], n.ID)
		}
		assert.Equal(t, "first", notes[0].Title)
		assert.Equal(t, "third", notes[2].Title)
	})

	t.Run("update overwrites and keeps id", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Insert(ctx, NoteInput{Title: "old title", Description: "old body"})
		require.NoError(t, err)

		got, err := s.Update(ctx, id, NoteInput{Title: "new title", Description: "new body"})
		require.NoError(t, err)
		assert.Equal(t, id, got)

		note, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "new title", note.Title)
		assert.Equal(t, "new body", note.Description)

		notes, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store {
		return newSQLiteTestStore(t)
	})
}

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)

	s := NewSQLiteStore(db)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	s := newSQLiteTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("NOTES_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("NOTES_TEST_POSTGRES_DSN not set")
	}

	testStoreContract(t, func(t *testing.T) Store {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		require.NoError(t, err)

		s := NewPostgresStore(db)
		require.NoError(t, db.Migrator().DropTable(&noteRecord{}))
		require.NoError(t, s.Migrate(context.Background()))
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("NOTES_TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("NOTES_TEST_MONGODB_URI not set")
	}

	testStoreContract(t, func(t *testing.T) Store {
		ctx := context.Background()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		require.NoError(t, err)

		database := client.Database("notes_test")
		require.NoError(t, database.Drop(ctx))

		s := NewMongoStore(database)
		require.NoError(t, s.Migrate(ctx))
		t.Cleanup(func() { s.Close() })
		return s
	})
}
