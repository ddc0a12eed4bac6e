package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	applog "safeguard-backend/internal/logger"
)

// Collection names.
const (
	CollPolicies         = "policies"
	CollClaims           = "claims"
	CollInsuranceOptions = "insuranceOptions"
	CollTokens           = "tokens"
	CollUsers            = "users"
)

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

type MongoConfig struct {
	URI            string
	DBName         string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
}

func ConnectMongo(ctx context.Context, cfg MongoConfig) (*MongoClient, error) {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	safeURI := redactMongoURI(cfg.URI)
	applog.CtxInfo(ctx, "connecting to MongoDB", zap.String("uri", safeURI), zap.String("database", cfg.DBName))

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout * 2).
		SetMaxConnIdleTime(10 * time.Minute)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	applog.CtxInfo(ctx, "connected to MongoDB", zap.String("uri", safeURI))
	return &MongoClient{Client: client, Database: client.Database(cfg.DBName)}, nil
}

func (m *MongoClient) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// IndexModels returns the index set per collection.
func IndexModels() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		CollPolicies: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "holder", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "startDate", Value: 1}}},
			{Keys: bson.D{{Key: "endDate", Value: 1}}},
		},
		CollClaims: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "policyId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		},
		CollInsuranceOptions: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		},
		CollTokens: {
			{Keys: bson.D{{Key: "symbol", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "address", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		CollUsers: {
			{Keys: bson.D{{Key: "address", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "policies", Value: 1}}},
			{Keys: bson.D{{Key: "claims", Value: 1}}},
		},
	}
}

func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for coll, models := range IndexModels() {
		if _, err := database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// redactMongoURI hides credentials from a MongoDB URI.
func redactMongoURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return uri
	}
	return scheme + "://***:***@" + rest[at+1:]
}
