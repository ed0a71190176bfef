package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/daybook/journal-api/internal/core/domain"
)

const entryCollection = "entries"

type MongoEntryRepository struct {
	coll *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *MongoEntryRepository {
	return &MongoEntryRepository{coll: db.Collection(entryCollection)}
}

type mongoEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Mood      string             `bson:"mood,omitempty"`
	Tags      []string           `bson:"tags,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoEntryRepository) Insert(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	doc := mongoEntry{
		UserID:    entry.UserID,
		Title:     entry.Title,
		Content:   entry.Content,
		Mood:      string(entry.Mood),
		Tags:      entry.Tags,
		CreatedAt: entry.CreatedAt.Unix(),
		UpdatedAt: entry.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	created := *entry
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoEntryRepository) FindByID(ctx context.Context, id, userID string) (*domain.Entry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	var me mongoEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return toDomainEntry(&me), nil
}

func (r *MongoEntryRepository) Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	oid, err := primitive.ObjectIDFromHex(entry.ID)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": entry.UserID},
		bson.M{"$set": bson.M{
			"title":      entry.Title,
			"content":    entry.Content,
			"mood":       string(entry.Mood),
			"tags":       entry.Tags,
			"updated_at": entry.UpdatedAt.Unix(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEntryNotFound
	}
	return entry, nil
}

func (r *MongoEntryRepository) Delete(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *MongoEntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Entry, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]domain.Entry, 0, limit)
	for cur.Next(ctx) {
		var me mongoEntry
		if err := cur.Decode(&me); err != nil {
			return nil, 0, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, *toDomainEntry(&me))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	return entries, total, nil
}

func (r *MongoEntryRepository) CountByMood(ctx context.Context, userID string) (map[domain.Mood]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$mood", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by mood: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.Mood]int64)
	for cur.Next(ctx) {
		var row struct {
			Mood  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode mood count: %w", err)
		}
		counts[domain.Mood(row.Mood)] = row.Count
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("count by mood: %w", err)
	}
	return counts, nil
}

func toDomainEntry(me *mongoEntry) *domain.Entry {
	return &domain.Entry{
		ID:        me.ID.Hex(),
		UserID:    me.UserID,
		Title:     me.Title,
		Content:   me.Content,
		Mood:      domain.Mood(me.Mood),
		Tags:      me.Tags,
		CreatedAt: unixToTime(me.CreatedAt),
		UpdatedAt: unixToTime(me.UpdatedAt),
	}
}
