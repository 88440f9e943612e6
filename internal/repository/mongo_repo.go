package repository

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"truckbook/internal/db"
)

// ConnectMongo connects to MongoDB and pings it before returning.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

type vehicleDocument struct {
	ID       string  `bson:"_id"`
	Position int     `bson:"position"`
	Name     string  `bson:"name"`
	Free     bool    `bson:"free"`
	Occupant *string `bson:"occupant,omitempty"`
}

// MongoFleetStore keeps one document per vehicle.
type MongoFleetStore struct {
	Collection *mongo.Collection
	Default    db.Fleet
}

func NewMongoFleetStore(collection *mongo.Collection, defaultFleet db.Fleet) *MongoFleetStore {
	return &MongoFleetStore{Collection: collection, Default: defaultFleet.Clone()}
}

func (s *MongoFleetStore) Load(ctx context.Context) (db.Fleet, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := s.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []vehicleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding vehicles: %w", err)
	}
	if len(docs) == 0 {
		log.Info("Vehicles collection is empty, starting from default roster")
		return s.Default.Clone(), nil
	}

	fleet := make(db.Fleet, 0, len(docs))
	for _, doc := range docs {
		fleet = append(fleet, db.Vehicle{ID: doc.ID, Name: doc.Name, Free: doc.Free, Occupant: doc.Occupant})
	}
	if err := fleet.Validate(); err != nil {
		return nil, err
	}
	return fleet, nil
}

// Save drops stale vehicles and upserts the rest in one ordered bulk write.
func (s *MongoFleetStore) Save(ctx context.Context, fleet db.Fleet) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if err := fleet.Validate(); err != nil {
		return fmt.Errorf("refusing to save roster: %w", err)
	}

	ids := make([]string, 0, len(fleet))
	for _, v := range fleet {
		ids = append(ids, v.ID)
	}
	models := []mongo.WriteModel{
		mongo.NewDeleteManyModel().SetFilter(bson.M{"_id": bson.M{"$nin": ids}}),
	}
	for i, v := range fleet {
		doc := vehicleDocument{ID: v.ID, Position: i, Name: v.Name, Free: v.Free, Occupant: v.Occupant}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": v.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if _, err := s.Collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("error saving vehicles: %w", err)
	}
	return nil
}
