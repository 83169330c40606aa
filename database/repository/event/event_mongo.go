// File: database/repository/event/event_mongo.go
package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoEventRepo implements EventRepository using MongoDB.
type MongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo constructs a new instance of MongoEventRepo.
func NewMongoEventRepo() EventRepository {
	db := database.MongoClient.Database("slotwise")
	return &MongoEventRepo{coll: db.Collection("events")}
}

func (repo *MongoEventRepo) GetByID(id string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var event models.Event
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("event %s not found", id)
		}
		return nil, fmt.Errorf("error fetching event %s: %w", id, err)
	}
	return &event, nil
}

func (repo *MongoEventRepo) ReplaceSchedule(id string, schedule models.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"schedule": schedule}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error replacing schedule for event %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}
