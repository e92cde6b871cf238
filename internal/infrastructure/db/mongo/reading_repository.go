package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppk205/comicreader/internal/core/domain"
)

const readingCollection = "reading_history"

// MongoReadingRepository persists chapter-read events per user.
type MongoReadingRepository struct {
	coll *mongo.Collection
}

func NewReadingRepository(db *mongo.Database) *MongoReadingRepository {
	return &MongoReadingRepository{coll: db.Collection(readingCollection)}
}

type mongoReadingEntry struct {
	UserID    string `bson:"user_id"`
	MangaID   string `bson:"manga_id"`
	ChapterID string `bson:"chapter_id"`
	ReadAt    int64  `bson:"read_at"`
}

func (r *MongoReadingRepository) Append(ctx context.Context, entry domain.ReadingEntry) error {
	doc := mongoReadingEntry{
		UserID:    entry.UserID,
		MangaID:   entry.MangaID,
		ChapterID: entry.ChapterID,
		ReadAt:    entry.ReadAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert reading entry: %w", err)
	}
	return nil
}

func (r *MongoReadingRepository) History(ctx context.Context, userID string, limit int) ([]domain.ReadingEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "read_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reading history: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.ReadingEntry
	for cursor.Next(ctx) {
		var me mongoReadingEntry
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode reading entry: %w", err)
		}
		entries = append(entries, domain.ReadingEntry{
			UserID:    me.UserID,
			MangaID:   me.MangaID,
			ChapterID: me.ChapterID,
			ReadAt:    time.Unix(me.ReadAt, 0).UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate reading history: %w", err)
	}
	return entries, nil
}
