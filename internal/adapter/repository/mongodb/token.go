package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safeguard-backend/internal/domain/token"
	"safeguard-backend/internal/infrastructure/db"
)

type TokenRepo struct {
	coll collection[token.Token]
}

func NewTokenRepo(database *mongo.Database) *TokenRepo {
	return &TokenRepo{coll: newCollection[token.Token](database.Collection(db.CollTokens), token.ErrNotFound, token.ErrDuplicate)}
}

func (r *TokenRepo) Create(ctx context.Context, t *token.Token) error {
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	return r.coll.insert(ctx, t)
}

func (r *TokenRepo) GetByAddress(ctx context.Context, address string) (*token.Token, error) {
	return r.coll.findOne(ctx, bson.M{"address": equalFold(address)})
}

func (r *TokenRepo) GetBySymbol(ctx context.Context, symbol string) (*token.Token, error) {
	return r.coll.findOne(ctx, bson.M{"symbol": equalFold(symbol)})
}

func (r *TokenRepo) List(ctx context.Context) ([]token.Token, error) {
	return r.coll.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "symbol", Value: 1}}))
}

func (r *TokenRepo) Count(ctx context.Context) (int64, error) { return r.coll.count(ctx) }

func (r *TokenRepo) DeleteAll(ctx context.Context) (int64, error) { return r.coll.deleteAll(ctx) }
