package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"safeguard-backend/internal/domain/user"
	"safeguard-backend/internal/infrastructure/db"
)

type UserRepo struct {
	coll collection[user.User]
}

func NewUserRepo(database *mongo.Database) *UserRepo {
	return &UserRepo{coll: newCollection[user.User](database.Collection(db.CollUsers), user.ErrNotFound, nil)}
}

func (r *UserRepo) GetByAddress(ctx context.Context, address string) (*user.User, error) {
	return r.coll.findOne(ctx, bson.M{"address": strings.ToLower(address)})
}

func (r *UserRepo) AddPolicy(ctx context.Context, address, policyID string) error {
	return r.addTo(ctx, address, "policies", policyID)
}

func (r *UserRepo) AddClaim(ctx context.Context, address, claimID string) error {
	return r.addTo(ctx, address, "claims", claimID)
}

// addTo appends id to the user's list field, creating the user if needed.
func (r *UserRepo) addTo(ctx context.Context, address, field, id string) error {
	now := time.Now().UTC()
	onInsert := bson.M{"createdAt": now, "roles": []user.Role{}}
	for _, f := range []string{"policies", "claims"} {
		if f != field {
			onInsert[f] = []string{}
		}
	}
	_, err := r.coll.c.UpdateOne(ctx,
		bson.M{"address": strings.ToLower(address)},
		bson.M{
			"$addToSet":    bson.M{field: id},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": onInsert,
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *UserRepo) SetRoles(ctx context.Context, address string, roles []user.Role) (*user.User, error) {
	if roles == nil {
		roles = []user.Role{}
	}
	now := time.Now().UTC()
	var out user.User
	err := r.coll.c.FindOneAndUpdate(ctx,
		bson.M{"address": strings.ToLower(address)},
		bson.M{
			"$set":         bson.M{"roles": roles, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now, "policies": []string{}, "claims": []string{}},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
