package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{coll: database.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create review indexes: %v\n", err)
	}
	return repo
}

func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its unique ID.
func (r *MongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch review %s: %w", id, err)
	}
	return &review, nil
}

// Update replaces the mutable fields of an existing review.
func (r *MongoReviewRepo) Update(ctx context.Context, review *models.Review) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	review.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"tour_id":    review.TourID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"updated_at": review.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": review.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update review %s: %w", review.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review document.
func (r *MongoReviewRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByTour retrieves all reviews for a tour, newest first.
func (r *MongoReviewRepo) ListByTour(ctx context.Context, tourID string) ([]models.Review, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.coll.Find(ctx, bson.M{"tour_id": tourID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for tour %s: %w", tourID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// AggregateTourRating groups the tour's reviews into a count and mean rating.
func (r *MongoReviewRepo) AggregateTourRating(ctx context.Context, tourID string) (int64, float64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"tour_id": tourID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$tour_id",
			"n_rating":   bson.M{"$sum": 1},
			"avg_rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings for tour %s: %w", tourID, err)
	}
	defer cursor.Close(ctx)

	var stats []struct {
		NRating   int64   `bson:"n_rating"`
		AvgRating float64 `bson:"avg_rating"`
	}
	if err := cursor.All(ctx, &stats); err != nil {
		return 0, 0, fmt.Errorf("failed to decode rating stats: %w", err)
	}
	if len(stats) == 0 {
		return 0, 0, nil
	}
	return stats[0].NRating, stats[0].AvgRating, nil
}
