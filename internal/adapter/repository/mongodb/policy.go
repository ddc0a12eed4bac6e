package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"safeguard-backend/internal/domain/policy"
	"safeguard-backend/internal/infrastructure/db"
)

type PolicyRepo struct {
	coll collection[policy.Policy]
}

func NewPolicyRepo(database *mongo.Database) *PolicyRepo {
	return &PolicyRepo{coll: newCollection[policy.Policy](database.Collection(db.CollPolicies), policy.ErrNotFound, policy.ErrDuplicate)}
}

func (r *PolicyRepo) Create(ctx context.Context, p *policy.Policy) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return r.coll.insert(ctx, p)
}

func (r *PolicyRepo) GetByID(ctx context.Context, id string) (*policy.Policy, error) {
	return r.coll.findOne(ctx, bson.M{"id": id})
}

func (r *PolicyRepo) List(ctx context.Context, f policy.Filter) ([]policy.Policy, error) {
	filter := bson.M{}
	if f.Holder != "" {
		filter["holder"] = equalFold(f.Holder)
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return r.coll.find(ctx, filter, newestFirst())
}

func (r *PolicyRepo) UpdateStatus(ctx context.Context, id string, from, to policy.Status, at time.Time) error {
	return r.coll.updateIfStatus(ctx, id, from,
		bson.M{"$set": bson.M{"status": to, "updatedAt": at.UTC()}},
		policy.ErrStatusChanged,
	)
}

func (r *PolicyRepo) ExpireBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.coll.c.UpdateMany(ctx,
		bson.M{"status": policy.StatusActive, "endDate": bson.M{"$gt": time.Time{}, "$lt": t.UTC()}},
		bson.M{"$set": bson.M{"status": policy.StatusExpired, "updatedAt": t.UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *PolicyRepo) Count(ctx context.Context) (int64, error) { return r.coll.count(ctx) }

func (r *PolicyRepo) DeleteAll(ctx context.Context) (int64, error) { return r.coll.deleteAll(ctx) }
