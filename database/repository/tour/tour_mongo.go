package tourRepo

import (
	"context"
	"fmt"
	"time"

	"ceylonescape/database"
	"ceylonescape/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTourRepo implements TourRepository using MongoDB.
type MongoTourRepo struct {
	coll *mongo.Collection
}

// NewMongoTourRepo creates a new instance of TourRepository using MongoDB.
func NewMongoTourRepo() TourRepository {
	repo := &MongoTourRepo{coll: database.Collection("tours")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create tour indexes: %v\n", err)
	}
	return repo
}

func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Create inserts a new tour with the default rating summary.
func (r *MongoTourRepo) Create(ctx context.Context, tour *models.Tour) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	tour.CreatedAt = time.Now()
	tour.RatingsAverage = models.DefaultRatingsAverage
	tour.RatingsQuantity = models.DefaultRatingsQuantity

	if _, err := r.coll.InsertOne(ctx, tour); err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}
	return nil
}

// GetByID retrieves a tour by its unique ID.
func (r *MongoTourRepo) GetByID(ctx context.Context, id string) (*models.Tour, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var tour models.Tour
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tour); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch tour %s: %w", id, err)
	}
	return &tour, nil
}

// GetAll retrieves all tours, newest first.
func (r *MongoTourRepo) GetAll(ctx context.Context) ([]models.Tour, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tours: %w", err)
	}
	defer cursor.Close(ctx)

	var tours []models.Tour
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}
	return tours, nil
}

// Update applies the client-writable fields of a tour and returns the updated
// document. The rating summary is not touchable through this path.
func (r *MongoTourRepo) Update(ctx context.Context, id string, input models.TourInput) (*models.Tour, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       input.Title,
		"description": input.Description,
		"price":       input.Price,
		"image":       input.Image,
		"date":        input.Date,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tour models.Tour
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&tour); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tour %s: %w", id, err)
	}
	return &tour, nil
}

// Delete removes a tour document.
func (r *MongoTourRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tour %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRatingSummary writes the derived rating fields for a tour.
func (r *MongoTourRepo) UpdateRatingSummary(ctx context.Context, id string, average float64, quantity int64) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"ratings_average":  average,
		"ratings_quantity": quantity,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating summary for tour %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
