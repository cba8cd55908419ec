package mockstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoConfig describes the MongoDB deployment holding overrides.
type MongoConfig struct {
	ConnectionURL  string        `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"MONGODB_DATABASE" envDefault:"proteus"`
	Collection     string        `env:"MONGODB_COLLECTION" envDefault:"mock_configs"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"2s"`
}

// ConnectMongo creates a client and verifies it with a ping, retrying on failure.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnectToMongo, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToConnectToMongo
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Type      string    `bson:"type"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores one document per override, keyed by the hashed key.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoBackend(client *mongo.Client, database, collection string) *MongoBackend {
	return &MongoBackend{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (m *MongoBackend) Load(ctx context.Context, key string) (Entry, bool, error) {
	var doc mongoEntry
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var e Entry
	if err := e.Type.UnmarshalText([]byte(doc.Type)); err != nil {
		return Entry{}, false, errors.Join(ErrCorruptedEntry, err)
	}
	e.Value = doc.Value
	return e, true, nil
}

func (m *MongoBackend) Store(ctx context.Context, key string, entry Entry) error {
	doc := mongoEntry{
		Key:       key,
		Type:      entry.Type.String(),
		Value:     entry.Value,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := m.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (m *MongoBackend) Delete(ctx context.Context, key string) error {
	_, err := m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	return err
}

func (m *MongoBackend) DeleteAll(ctx context.Context, prefix string) error {
	filter := bson.D{{Key: "_id", Value: bson.Regex{Pattern: "^" + regexp.QuoteMeta(prefix)}}}
	_, err := m.coll.DeleteMany(ctx, filter)
	return err
}

func (m *MongoBackend) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
