package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/pkg/metrics"
)

// MongoStore is the production Store backed by a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo opens a MongoDB client, verifies the connection with a ping,
// and returns a Store over the named database.
func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("docstore: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("docstore: ping: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

// Client exposes the underlying mongo client (used to wire the log sink).
func (s *MongoStore) Client() *mongo.Client { return s.client }

// Database exposes the underlying database handle.
func (s *MongoStore) Database() *mongo.Database { return s.db }

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{name: name, col: s.db.Collection(name)}
}

type mongoCollection struct {
	name string
	col  *mongo.Collection
}

func (c *mongoCollection) Get(ctx context.Context, id string, dest interface{}) error {
	defer metrics.ObserveStoreOp(c.name, "get", time.Now())

	err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (c *mongoCollection) Set(ctx context.Context, id string, doc interface{}) error {
	defer metrics.ObserveStoreOp(c.name, "set", time.Now())

	_, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

func (c *mongoCollection) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	defer metrics.ObserveStoreOp(c.name, "merge", time.Now())

	_, err := c.col.UpdateByID(ctx, id, bson.M{"$set": fields}, options.Update().SetUpsert(true))
	return err
}

func (c *mongoCollection) Add(ctx context.Context, doc interface{}) (string, error) {
	defer metrics.ObserveStoreOp(c.name, "add", time.Now())

	raw, err := toMap(doc)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	raw["_id"] = id

	if _, err := c.col.InsertOne(ctx, raw); err != nil {
		return "", err
	}
	return id, nil
}

func (c *mongoCollection) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer metrics.ObserveStoreOp(c.name, "update", time.Now())

	res, err := c.col.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp(c.name, "delete", time.Now())

	_, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (c *mongoCollection) Find(ctx context.Context, filters []Filter, dest interface{}) error {
	defer metrics.ObserveStoreOp(c.name, "find", time.Now())

	cur, err := c.col.Find(ctx, filtersToBSON(filters))
	if err != nil {
		return err
	}
	return cur.All(ctx, dest)
}

func (c *mongoCollection) GetMulti(ctx context.Context, ids []string, dest interface{}) error {
	defer metrics.ObserveStoreOp(c.name, "get_multi", time.Now())

	cur, err := c.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	return cur.All(ctx, dest)
}

// filtersToBSON folds conjunctive filters into a single query document,
// merging multiple range conditions on the same field.
func filtersToBSON(filters []Filter) bson.M {
	query := bson.M{}
	for _, f := range filters {
		switch f.Op {
		case OpEq:
			query[f.Field] = f.Value
		case OpGte, OpLte:
			ops, ok := query[f.Field].(bson.M)
			if !ok {
				ops = bson.M{}
				query[f.Field] = ops
			}
			if f.Op == OpGte {
				ops["$gte"] = f.Value
			} else {
				ops["$lte"] = f.Value
			}
		}
	}
	return query
}

func toMap(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "_id") // ids are assigned by Add, never carried in from the doc
	return m, nil
}
