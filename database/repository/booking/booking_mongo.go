// File: database/repository/booking/booking_mongo.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("slotwise")
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (repo *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := opCtx()
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s not found", id)
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) UpdateTimes(id string, start, end time.Time) error {
	ctx, cancel := opCtx()
	defer cancel()

	update := bson.M{"$set": bson.M{"start": start, "end": end}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (repo *MongoBookingRepo) Cancel(id string) error {
	ctx, cancel := opCtx()
	defer cancel()

	update := bson.M{"$set": bson.M{"cancelled": true, "status": models.BookingCancelled}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error cancelling booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (repo *MongoBookingRepo) ListForEventBetween(eventID string, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"event_id":  eventID,
		"cancelled": false,
		"start":     bson.M{"$lt": to},
		"end":       bson.M{"$gt": from},
	}
	return repo.list(filter)
}

func (repo *MongoBookingRepo) ListForEvent(eventID, excludeID string) ([]models.Booking, error) {
	filter := bson.M{"event_id": eventID, "cancelled": false}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return repo.list(filter)
}

func (repo *MongoBookingRepo) HostHasOverlap(hostID int64, start, end time.Time, excludeID string) (bool, error) {
	ctx, cancel := opCtx()
	defer cancel()

	filter := bson.M{
		"assigned_to": hostID,
		"cancelled":   false,
		"start":       bson.M{"$lt": end},
		"end":         bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("error checking host %d overlap: %w", hostID, err)
	}
	return count > 0, nil
}

func (repo *MongoBookingRepo) LastAssignedAt(hostID int64) (time.Time, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"assigned_to": hostID, "cancelled": false}, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("error fetching last assignment for host %d: %w", hostID, err)
	}
	return booking.CreatedAt, nil
}

func (repo *MongoBookingRepo) CountForHostBetween(hostID int64, from, to time.Time) (int64, error) {
	ctx, cancel := opCtx()
	defer cancel()

	filter := bson.M{
		"assigned_to": hostID,
		"cancelled":   false,
		"start":       bson.M{"$gte": from, "$lt": to},
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings for host %d: %w", hostID, err)
	}
	return count, nil
}

func (repo *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}
