package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"ceylonescape/database"
	"ceylonescape/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Create inserts a new booking document. A unique-index violation on
// (user_id, tour_id, booking_date) is returned as ErrDuplicate; the insert
// itself is the admission check, there is no read-then-write race window.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update replaces the mutable fields of an existing booking. A date or tour
// change that collides with another booking trips the same unique index as
// Create and is returned as ErrDuplicate.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"tour_id":      booking.TourID,
		"booking_date": booking.BookingDate,
		"status":       booking.Status,
		"updated_at":   booking.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": booking.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets only the status field of a booking.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking document, freeing its (user, tour, date) slot.
func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns bookings joined with minimal tour/user projections.
func (r *MongoBookingRepo) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetails, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	match := bson.M{}
	if filter.UserID != "" {
		match["user_id"] = filter.UserID
	}
	if filter.TourID != "" {
		match["tour_id"] = filter.TourID
	}
	if filter.Status != "" {
		match["status"] = filter.Status
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "tours",
			"localField":   "tour_id",
			"foreignField": "id",
			"as":           "tour_docs",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "id",
			"as":           "user_docs",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"tour": bson.M{"$arrayElemAt": bson.A{"$tour_docs", 0}},
			"user": bson.M{"$arrayElemAt": bson.A{"$user_docs", 0}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"tour_docs":  0,
			"user_docs":  0,
			"tour.image": 0,
			"user.role":  0,
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.BookingDetails
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
