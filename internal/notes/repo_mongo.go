package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const notesCounter = "notes"

// mongoNote is the document shape stored in the notes collection
type mongoNote struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d mongoNote) toNote() *Note {
	return &Note{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoStore keeps notes in a MongoDB collection. Integer ids come from a
// sequence document in the counters collection.
type MongoStore struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll:     db.Collection("notes"),
		counters: db.Collection("counters"),
	}
}

// Migrate creates necessary indexes for the notes collection
func (r *MongoStore) Migrate(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// nextID atomically increments and returns the notes sequence
func (r *MongoStore) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": notesCounter},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next note id: %w", err)
	}
	return counter.Seq, nil
}

// Insert creates a new note
func (r *MongoStore) Insert(ctx context.Context, in NoteInput) (int64, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	doc := mongoNote{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	return id, nil
}

// FindByID retrieves a note by its ID
func (r *MongoStore) FindByID(ctx context.Context, id int64) (*Note, error) {
	var doc mongoNote
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note %d: %w", id, err)
	}
	return doc.toNote(), nil
}

// List retrieves every note in id order
func (r *MongoStore) List(ctx context.Context) ([]*Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoNote
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]*Note, len(docs))
	for i, doc := range docs {
		notes[i] = doc.toNote()
	}
	return notes, nil
}

// Update overwrites title and description of a note
func (r *MongoStore) Update(ctx context.Context, id int64, in NoteInput) (int64, error) {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":       in.Title,
			"description": in.Description,
			"updated_at":  time.Now(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("update note %d: %w", id, err)
	}
	return id, nil
}

func (r *MongoStore) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

// Close disconnects the underlying client
func (r *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.coll.Database().Client().Disconnect(ctx)
}
