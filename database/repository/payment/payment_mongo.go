package paymentRepo

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

// MongoPaymentSessionRepo implements PaymentSessionRepository using MongoDB.
type MongoPaymentSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentSessionRepo creates a new instance of
// PaymentSessionRepository using MongoDB.
func NewMongoPaymentSessionRepo() PaymentSessionRepository {
	repo := &MongoPaymentSessionRepo{coll: database.Collection("payment_sessions")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create payment session indexes: %v\n", err)
	}
	return repo
}

func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Create records a newly opened checkout session with status "created".
func (r *MongoPaymentSessionRepo) Create(ctx context.Context, session *models.PaymentSession) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	session.CreatedAt = time.Now()
	if session.Status == "" {
		session.Status = models.PaymentSessionCreated
	}

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create payment session: %w", err)
	}
	return nil
}

// GetBySessionID retrieves a payment session by the Stripe session ID.
func (r *MongoPaymentSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var session models.PaymentSession
	if err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment session %s: %w", sessionID, err)
	}
	return &session, nil
}

// Complete applies the created -> completed transition guarded by the current
// status, so concurrent or retried deliveries of the same event converge on a
// single first application.
func (r *MongoPaymentSessionRepo) Complete(ctx context.Context, sessionID string, fallback models.PaymentSession) (*models.PaymentSession, bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"session_id": sessionID, "status": models.PaymentSessionCreated}
	update := bson.M{"$set": bson.M{
		"status":       models.PaymentSessionCompleted,
		"completed_at": now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session models.PaymentSession
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&session)
	if err == nil {
		return &session, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, fmt.Errorf("failed to complete payment session %s: %w", sessionID, err)
	}

	// No session in "created" state: either this is a replay, or the session
	// was opened by another instance and never recorded here. Upsert a
	// completed record keyed on session_id; the unique index arbitrates races.
	fallback.SessionID = sessionID
	fallback.Status = models.PaymentSessionCompleted
	fallback.CreatedAt = now
	fallback.CompletedAt = &now

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$setOnInsert": fallback},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the upsert race; the winner applied the completion.
			existing, gerr := r.GetBySessionID(ctx, sessionID)
			if gerr != nil {
				return nil, false, gerr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to record completed payment session %s: %w", sessionID, err)
	}
	if res.UpsertedCount == 1 {
		return &fallback, true, nil
	}

	existing, err := r.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
