package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"safeguard-backend/internal/domain/claim"
	"safeguard-backend/internal/infrastructure/db"
)

type ClaimRepo struct {
	coll collection[claim.Claim]
}

func NewClaimRepo(database *mongo.Database) *ClaimRepo {
	return &ClaimRepo{coll: newCollection[claim.Claim](database.Collection(db.CollClaims), claim.ErrNotFound, claim.ErrDuplicate)}
}

func (r *ClaimRepo) Create(ctx context.Context, c *claim.Claim) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	return r.coll.insert(ctx, c)
}

func (r *ClaimRepo) GetByID(ctx context.Context, id string) (*claim.Claim, error) {
	return r.coll.findOne(ctx, bson.M{"id": id})
}

func (r *ClaimRepo) List(ctx context.Context, f claim.Filter) ([]claim.Claim, error) {
	filter := bson.M{}
	if f.PolicyID != "" {
		filter["policyId"] = f.PolicyID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return r.coll.find(ctx, filter, newestFirst())
}

func (r *ClaimRepo) Save(ctx context.Context, c *claim.Claim, from claim.Status) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	return r.coll.updateIfStatus(ctx, c.ID, from,
		bson.M{"$set": bson.M{
			"status":          c.Status,
			"processedBy":     c.ProcessedBy,
			"processedAt":     c.ProcessedAt,
			"rejectionReason": c.RejectionReason,
			"updatedAt":       c.UpdatedAt,
		}},
		claim.ErrStatusChanged,
	)
}

func (r *ClaimRepo) Count(ctx context.Context) (int64, error) { return r.coll.count(ctx) }

func (r *ClaimRepo) DeleteAll(ctx context.Context) (int64, error) { return r.coll.deleteAll(ctx) }
