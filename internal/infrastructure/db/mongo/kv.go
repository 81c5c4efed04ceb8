package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const kvCollection = "session_kv"

// KV exposes a single MongoDB collection as the gateway's string-keyed
// persistence medium. One document per logical key, keyed by _id.
type KV struct {
	coll *mongo.Collection
}

func NewKV(db *mongo.Database) *KV {
	return &KV{coll: db.Collection(kvCollection)}
}

type kvDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var doc kvDoc
	err := k.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo get %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	_, err := k.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		kvDoc{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

func (k *KV) Del(ctx context.Context, keys ...string) error {
	_, err := k.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return fmt.Errorf("mongo del: %w", err)
	}
	return nil
}

// Ping reports backing-store health for the readiness probe.
func (k *KV) Ping(ctx context.Context) error {
	return k.coll.Database().Client().Ping(ctx, nil)
}
