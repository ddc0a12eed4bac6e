package mongodb

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection is the typed access shared by the repositories. Driver errors
// are translated into the owning domain's sentinels.
type collection[T any] struct {
	c         *mongo.Collection
	notFound  error
	duplicate error
}

func newCollection[T any](c *mongo.Collection, notFound, duplicate error) collection[T] {
	return collection[T]{c: c, notFound: notFound, duplicate: duplicate}
}

func (r collection[T]) insert(ctx context.Context, doc *T) error {
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) && r.duplicate != nil {
			return r.duplicate
		}
		return err
	}
	return nil
}

func (r collection[T]) findOne(ctx context.Context, filter any) (*T, error) {
	var out T
	if err := r.c.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound
		}
		return nil, err
	}
	return &out, nil
}

func (r collection[T]) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := r.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// updateIfStatus applies update to document id only while its status is
// still from. No match is resolved to notFound or changed by a follow-up count.
func (r collection[T]) updateIfStatus(ctx context.Context, id string, from any, update any, changed error) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"id": id, "status": from}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := r.c.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return r.notFound
	}
	return changed
}

func (r collection[T]) count(ctx context.Context) (int64, error) {
	return r.c.CountDocuments(ctx, bson.D{})
}

func (r collection[T]) deleteAll(ctx context.Context) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// equalFold matches a string field case-insensitively.
func equalFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
