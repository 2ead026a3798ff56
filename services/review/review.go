package review

import (
	"context"
	"errors"
	"fmt"

	reviewRepo "ceylonescape/database/repository/review"
	tourRepo "ceylonescape/database/repository/tour"
	"ceylonescape/models"
	"ceylonescape/services/rating"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrForbidden signals the actor is neither the review's owner nor an
	// administrator.
	ErrForbidden = errors.New("not authorized to modify this review")
	ErrNotFound  = errors.New("review not found")
)

// ValidationError reports malformed review input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Service mutates reviews and keeps the owning tour's rating summary in step.
// Recomputation is an explicit call after every mutation, not a store-side
// hook, so bulk or direct mutations can't silently skip it.
type Service interface {
	Create(ctx context.Context, userID string, input models.ReviewInput) (*models.Review, error)
	Update(ctx context.Context, id string, actor models.Actor, patch models.ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, id string, actor models.Actor) error
	ListByTour(ctx context.Context, tourID string) ([]models.Review, error)
}

// DefaultReviewService implements Service.
type DefaultReviewService struct {
	Repo   reviewRepo.ReviewRepository
	Tours  tourRepo.TourRepository
	Engine rating.Engine
	Logger *zap.Logger
}

// Create validates and persists a review, then recomputes the tour summary.
func (s *DefaultReviewService) Create(ctx context.Context, userID string, input models.ReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, &ValidationError{Message: "rating must be between 1 and 5"}
	}
	if input.Comment == "" {
		return nil, &ValidationError{Message: "comment is required"}
	}
	if _, err := s.Tours.GetByID(ctx, input.TourID); err != nil {
		if errors.Is(err, tourRepo.ErrNotFound) {
			return nil, &ValidationError{Message: "tour does not exist"}
		}
		return nil, fmt.Errorf("failed to verify tour %s: %w", input.TourID, err)
	}

	r := &models.Review{
		ID:      uuid.New().String(),
		UserID:  userID,
		TourID:  input.TourID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}

	if err := s.Engine.RecomputeTourRating(ctx, r.TourID); err != nil {
		return nil, err
	}
	return r, nil
}

// Update applies a patch to a review the actor owns (or administers), then
// recomputes the summary for every tour the mutation touched. When the patch
// reassigns the review to another tour, both the old and new tour are
// recomputed.
func (s *DefaultReviewService) Update(ctx context.Context, id string, actor models.Actor, patch models.ReviewUpdate) (*models.Review, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if r.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	previousTourID := r.TourID

	if patch.TourID != nil {
		if _, err := s.Tours.GetByID(ctx, *patch.TourID); err != nil {
			if errors.Is(err, tourRepo.ErrNotFound) {
				return nil, &ValidationError{Message: "tour does not exist"}
			}
			return nil, fmt.Errorf("failed to verify tour %s: %w", *patch.TourID, err)
		}
		r.TourID = *patch.TourID
	}
	if patch.Rating != nil {
		if *patch.Rating < 1 || *patch.Rating > 5 {
			return nil, &ValidationError{Message: "rating must be between 1 and 5"}
		}
		r.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		if *patch.Comment == "" {
			return nil, &ValidationError{Message: "comment must not be empty"}
		}
		r.Comment = *patch.Comment
	}

	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err := s.Engine.RecomputeTourRating(ctx, r.TourID); err != nil {
		return nil, err
	}
	if previousTourID != r.TourID {
		if err := s.Engine.RecomputeTourRating(ctx, previousTourID); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Delete removes a review the actor owns (or administers) and recomputes the
// summary of the tour it belonged to. The tour ID is captured before the
// delete, since the review is gone afterwards.
func (s *DefaultReviewService) Delete(ctx context.Context, id string, actor models.Actor) error {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if r.UserID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	tourID := r.TourID
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Info("review deleted", zap.String("reviewID", id), zap.String("tourID", tourID))
	return s.Engine.RecomputeTourRating(ctx, tourID)
}

// ListByTour returns all reviews for a tour.
func (s *DefaultReviewService) ListByTour(ctx context.Context, tourID string) ([]models.Review, error) {
	return s.Repo.ListByTour(ctx, tourID)
}
