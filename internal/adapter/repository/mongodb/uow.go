package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"safeguard-backend/internal/domain/uow"
)

// UnitOfWork runs fn inside a multi-document transaction when the
// deployment supports it (replica set / mongos). Standalone servers get
// sequential writes.
type UnitOfWork struct {
	client        *mongo.Client
	database      *mongo.Database
	transactional bool
}

func NewUnitOfWork(client *mongo.Client, database *mongo.Database, transactional bool) *UnitOfWork {
	return &UnitOfWork{client: client, database: database, transactional: transactional}
}

func (u *UnitOfWork) repos() uow.Repos {
	return uow.Repos{
		Policies: NewPolicyRepo(u.database),
		Claims:   NewClaimRepo(u.database),
		Users:    NewUserRepo(u.database),
	}
}

func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, r uow.Repos) error) error {
	if !u.transactional || u.client == nil {
		return fn(ctx, u.repos())
	}
	sess, err := u.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, u.repos())
	})
	return err
}
