package tour

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	tourRepo "ceylonescape/database/repository/tour"
	"ceylonescape/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("tour not found")

// ValidationError reports malformed tour input.
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

const (
	tourListCacheKey = "tours:all"
	tourListCacheTTL = 5 * time.Minute
)

// Service exposes the tour catalogue. Clients can never write the derived
// rating fields through it; those belong to the rating engine.
type Service interface {
	List(ctx context.Context) ([]models.Tour, error)
	Get(ctx context.Context, id string) (*models.Tour, error)
	Create(ctx context.Context, input models.TourInput) (*models.Tour, error)
	Update(ctx context.Context, id string, input models.TourInput) (*models.Tour, error)
	Delete(ctx context.Context, id string) error
}

// DefaultTourService implements Service with a Redis-cached listing.
type DefaultTourService struct {
	Repo        tourRepo.TourRepository
	CacheClient *redis.Client
	Logger      *zap.Logger
}

// List returns all tours, served from cache when fresh.
func (s *DefaultTourService) List(ctx context.Context) ([]models.Tour, error) {
	if cached, err := s.CacheClient.Get(ctx, tourListCacheKey).Result(); err == nil {
		var tours []models.Tour
		if err := json.Unmarshal([]byte(cached), &tours); err == nil {
			return tours, nil
		}
		// Corrupt cache entry; fall through to the store.
		s.CacheClient.Del(ctx, tourListCacheKey)
	}

	tours, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(tours); err == nil {
		if err := s.CacheClient.Set(ctx, tourListCacheKey, data, tourListCacheTTL).Err(); err != nil {
			s.Logger.Warn("failed to cache tour list", zap.Error(err))
		}
	}
	return tours, nil
}

// Get returns a single tour.
func (s *DefaultTourService) Get(ctx context.Context, id string) (*models.Tour, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tourRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Create validates and persists a new tour.
func (s *DefaultTourService) Create(ctx context.Context, input models.TourInput) (*models.Tour, error) {
	if input.Title == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	if input.Price <= 0 {
		return nil, &ValidationError{Message: "price must be positive"}
	}

	t := &models.Tour{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Date:        input.Date,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return t, nil
}

// Update applies the client-writable fields of a tour.
func (s *DefaultTourService) Update(ctx context.Context, id string, input models.TourInput) (*models.Tour, error) {
	if input.Title == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	if input.Price <= 0 {
		return nil, &ValidationError{Message: "price must be positive"}
	}

	t, err := s.Repo.Update(ctx, id, input)
	if err != nil {
		if errors.Is(err, tourRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidateList(ctx)
	return t, nil
}

// Delete removes a tour.
func (s *DefaultTourService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, tourRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *DefaultTourService) invalidateList(ctx context.Context) {
	if err := s.CacheClient.Del(ctx, tourListCacheKey).Err(); err != nil {
		s.Logger.Warn("failed to invalidate tour list cache", zap.Error(err))
	}
}
