package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-gateway/feature/shipment/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the mongo collection holding the mirror.
const CollectionName = "shipments"

// MongoStore keeps the mirror in a mongo collection, one document per shipment.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps coll.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Migrate(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shipment_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_date", Value: -1}}},
		{Keys: bson.D{{Key: "sync_date", Value: -1}}},
		{Keys: bson.D{{Key: "shipment_status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create shipment indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

func (s *MongoStore) LoadAll(ctx context.Context) ([]models.Shipment, error) {
	return s.find(ctx, bson.M{}, options.Find())
}

func (s *MongoStore) BulkInsert(ctx context.Context, items []models.Shipment) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	_, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Insert treats a document already stored under the same id as inserted. An
// unordered InsertMany that fails part way leaves some documents written, and
// the per-record retry that follows must count them as added.
func (s *MongoStore) Insert(ctx context.Context, item models.Shipment) error {
	_, err := s.coll.InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (s *MongoStore) Update(ctx context.Context, item models.Shipment) error {
	res, err := s.coll.ReplaceOne(ctx, byID(item.ShipmentID), item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Touch(ctx context.Context, keys []string, at time.Time) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"shipment_id": bson.M{"$in": keys}},
		bson.M{"$set": bson.M{"sync_date": at}})
	return err
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, byID(key))
	return err
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.Shipment, error) {
	var out models.Shipment
	err := s.coll.FindOne(ctx, byID(id)).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shipment %s: %w", id, err)
	}
	return &out, nil
}

func (s *MongoStore) List(ctx context.Context, req models.ListRequest) ([]models.Shipment, error) {
	req = req.Defaults()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_date", Value: -1}, {Key: "shipment_id", Value: 1}}).
		SetSkip(int64(req.Offset())).
		SetLimit(int64(req.PageSize))
	return s.find(ctx, statusFilter(req.IncludeCancelled), opts)
}

func (s *MongoStore) Count(ctx context.Context, includeCancelled bool) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, statusFilter(includeCancelled))
	if err != nil {
		return 0, fmt.Errorf("count shipments: %w", err)
	}
	return n, nil
}

func (s *MongoStore) LastSynced(ctx context.Context) (time.Time, error) {
	var latest models.Shipment
	opts := options.FindOne().SetSort(bson.D{{Key: "sync_date", Value: -1}})
	err := s.coll.FindOne(ctx, bson.M{}, opts).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("last sync date: %w", err)
	}
	return latest.SyncDate.UTC(), nil
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	res, err := s.coll.UpdateOne(ctx, byID(id), bson.M{"$set": bson.M{"shipment_status": status}})
	if err != nil {
		return fmt.Errorf("update status %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Upsert(ctx context.Context, item models.Shipment) error {
	_, err := s.coll.ReplaceOne(ctx, byID(item.ShipmentID), item, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Shipment, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find shipments: %w", err)
	}
	out := make([]models.Shipment, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode shipments: %w", err)
	}
	return out, nil
}

func byID(id string) bson.M {
	return bson.M{"shipment_id": id}
}

func statusFilter(includeCancelled bool) bson.M {
	if includeCancelled {
		return bson.M{}
	}
	return bson.M{"shipment_status": bson.M{"$ne": models.StatusCanceled}}
}
