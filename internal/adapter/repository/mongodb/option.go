package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safeguard-backend/internal/domain/option"
	"safeguard-backend/internal/infrastructure/db"
)

type OptionRepo struct {
	coll collection[option.InsuranceOption]
}

func NewOptionRepo(database *mongo.Database) *OptionRepo {
	return &OptionRepo{coll: newCollection[option.InsuranceOption](database.Collection(db.CollInsuranceOptions), option.ErrNotFound, option.ErrDuplicate)}
}

func (r *OptionRepo) Create(ctx context.Context, o *option.InsuranceOption) error {
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	return r.coll.insert(ctx, o)
}

func (r *OptionRepo) GetByID(ctx context.Context, id string) (*option.InsuranceOption, error) {
	return r.coll.findOne(ctx, bson.M{"id": id})
}

func (r *OptionRepo) List(ctx context.Context) ([]option.InsuranceOption, error) {
	return r.coll.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
}

func (r *OptionRepo) Count(ctx context.Context) (int64, error) { return r.coll.count(ctx) }

func (r *OptionRepo) DeleteAll(ctx context.Context) (int64, error) { return r.coll.deleteAll(ctx) }
