package review

import (
	"context"
	"errors"
	"testing"

	reviewRepo "ceylonescape/database/repository/review"
	tourRepo "ceylonescape/database/repository/tour"
	"ceylonescape/models"

	"go.uber.org/zap"
)

// MockReviewRepository is a func-field mock of reviewRepo.ReviewRepository.
type MockReviewRepository struct {
	CreateFunc     func(ctx context.Context, r *models.Review) error
	GetByIDFunc    func(ctx context.Context, id string) (*models.Review, error)
	UpdateFunc     func(ctx context.Context, r *models.Review) error
	DeleteFunc     func(ctx context.Context, id string) error
	ListByTourFunc func(ctx context.Context, tourID string) ([]models.Review, error)
}

func (m *MockReviewRepository) Create(ctx context.Context, r *models.Review) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, reviewRepo.ErrNotFound
}

func (m *MockReviewRepository) Update(ctx context.Context, r *models.Review) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockReviewRepository) ListByTour(ctx context.Context, tourID string) ([]models.Review, error) {
	if m.ListByTourFunc != nil {
		return m.ListByTourFunc(ctx, tourID)
	}
	return nil, nil
}

func (m *MockReviewRepository) AggregateTourRating(ctx context.Context, tourID string) (int64, float64, error) {
	return 0, 0, nil
}

// MockTourRepository answers tour existence checks.
type MockTourRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Tour, error)
}

func (m *MockTourRepository) Create(ctx context.Context, t *models.Tour) error { return nil }

func (m *MockTourRepository) GetByID(ctx context.Context, id string) (*models.Tour, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.Tour{ID: id}, nil
}

func (m *MockTourRepository) GetAll(ctx context.Context) ([]models.Tour, error) { return nil, nil }

func (m *MockTourRepository) Update(ctx context.Context, id string, input models.TourInput) (*models.Tour, error) {
	return nil, nil
}

func (m *MockTourRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *MockTourRepository) UpdateRatingSummary(ctx context.Context, id string, average float64, quantity int64) error {
	return nil
}

// MockEngine records recompute calls in order.
type MockEngine struct {
	RecomputeFunc func(ctx context.Context, tourID string) error
	Calls         []string
}

func (m *MockEngine) RecomputeTourRating(ctx context.Context, tourID string) error {
	m.Calls = append(m.Calls, tourID)
	if m.RecomputeFunc != nil {
		return m.RecomputeFunc(ctx, tourID)
	}
	return nil
}

func newService(repo *MockReviewRepository, tours *MockTourRepository, engine *MockEngine) *DefaultReviewService {
	return &DefaultReviewService{Repo: repo, Tours: tours, Engine: engine, Logger: zap.NewNop()}
}

func TestCreateReview(t *testing.T) {
	tests := []struct {
		name       string
		input      models.ReviewInput
		setupMocks func(*MockReviewRepository, *MockTourRepository)
		wantValErr bool
	}{
		{
			name:  "valid review",
			input: models.ReviewInput{TourID: "tour-7", Rating: 4, Comment: "Great guide"},
		},
		{
			name:       "rating below range",
			input:      models.ReviewInput{TourID: "tour-7", Rating: 0, Comment: "Great guide"},
			wantValErr: true,
		},
		{
			name:       "rating above range",
			input:      models.ReviewInput{TourID: "tour-7", Rating: 6, Comment: "Great guide"},
			wantValErr: true,
		},
		{
			name:       "empty comment",
			input:      models.ReviewInput{TourID: "tour-7", Rating: 4},
			wantValErr: true,
		},
		{
			name:  "unknown tour",
			input: models.ReviewInput{TourID: "tour-missing", Rating: 4, Comment: "Great guide"},
			setupMocks: func(rr *MockReviewRepository, tr *MockTourRepository) {
				tr.GetByIDFunc = func(ctx context.Context, id string) (*models.Tour, error) {
					return nil, tourRepo.ErrNotFound
				}
			},
			wantValErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockReviewRepository{}
			tours := &MockTourRepository{}
			engine := &MockEngine{}
			if tt.setupMocks != nil {
				tt.setupMocks(repo, tours)
			}
			svc := newService(repo, tours, engine)

			r, err := svc.Create(context.Background(), "user-a", tt.input)

			if tt.wantValErr {
				if !IsValidation(err) {
					t.Errorf("Create() error = %v, want validation error", err)
				}
				if len(engine.Calls) != 0 {
					t.Error("summary recomputed for a rejected review")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if r.UserID != "user-a" {
				t.Errorf("review owner = %q, want user-a", r.UserID)
			}
			if len(engine.Calls) != 1 || engine.Calls[0] != tt.input.TourID {
				t.Errorf("recompute calls = %v, want exactly [%s]", engine.Calls, tt.input.TourID)
			}
		})
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	existing := &models.Review{ID: "rv-1", UserID: "user-a", TourID: "tour-7", Rating: 4, Comment: "Great guide"}
	newRating := 2

	tests := []struct {
		name    string
		actor   models.Actor
		wantErr error
	}{
		{name: "owner may update", actor: models.Actor{ID: "user-a", Role: "user"}},
		{name: "admin may update", actor: models.Actor{ID: "someone-else", Role: "admin"}},
		{name: "stranger is forbidden", actor: models.Actor{ID: "user-b", Role: "user"}, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockReviewRepository{
				GetByIDFunc: func(ctx context.Context, id string) (*models.Review, error) {
					cp := *existing
					return &cp, nil
				},
			}
			engine := &MockEngine{}
			svc := newService(repo, &MockTourRepository{}, engine)

			_, err := svc.Update(context.Background(), "rv-1", tt.actor, models.ReviewUpdate{Rating: &newRating})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Update() error = %v, wantErr %v", err, tt.wantErr)
				}
				if len(engine.Calls) != 0 {
					t.Error("summary recomputed for a forbidden update")
				}
				return
			}
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if len(engine.Calls) != 1 || engine.Calls[0] != "tour-7" {
				t.Errorf("recompute calls = %v, want exactly [tour-7]", engine.Calls)
			}
		})
	}
}

// Reassigning a review to another tour must refresh both summaries.
func TestUpdateReviewReassignsTour(t *testing.T) {
	repo := &MockReviewRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Review, error) {
			return &models.Review{ID: id, UserID: "user-a", TourID: "tour-7", Rating: 4, Comment: "Great guide"}, nil
		},
	}
	engine := &MockEngine{}
	svc := newService(repo, &MockTourRepository{}, engine)

	target := "tour-8"
	r, err := svc.Update(context.Background(), "rv-1", models.Actor{ID: "user-a", Role: "user"}, models.ReviewUpdate{TourID: &target})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if r.TourID != "tour-8" {
		t.Errorf("review tour = %q, want tour-8", r.TourID)
	}
	if len(engine.Calls) != 2 || engine.Calls[0] != "tour-8" || engine.Calls[1] != "tour-7" {
		t.Errorf("recompute calls = %v, want [tour-8 tour-7]", engine.Calls)
	}
}

func TestDeleteReview(t *testing.T) {
	t.Run("owner delete recomputes prior tour", func(t *testing.T) {
		deleted := false
		repo := &MockReviewRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*models.Review, error) {
				return &models.Review{ID: id, UserID: "user-a", TourID: "tour-7"}, nil
			},
			DeleteFunc: func(ctx context.Context, id string) error {
				deleted = true
				return nil
			},
		}
		engine := &MockEngine{}
		svc := newService(repo, &MockTourRepository{}, engine)

		if err := svc.Delete(context.Background(), "rv-1", models.Actor{ID: "user-a", Role: "user"}); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !deleted {
			t.Error("review was not deleted")
		}
		if len(engine.Calls) != 1 || engine.Calls[0] != "tour-7" {
			t.Errorf("recompute calls = %v, want exactly [tour-7]", engine.Calls)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		repo := &MockReviewRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*models.Review, error) {
				return &models.Review{ID: id, UserID: "user-a", TourID: "tour-7"}, nil
			},
		}
		svc := newService(repo, &MockTourRepository{}, &MockEngine{})

		if err := svc.Delete(context.Background(), "rv-1", models.Actor{ID: "user-b", Role: "user"}); !errors.Is(err, ErrForbidden) {
			t.Errorf("Delete() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown review", func(t *testing.T) {
		svc := newService(&MockReviewRepository{}, &MockTourRepository{}, &MockEngine{})
		if err := svc.Delete(context.Background(), "rv-missing", models.Actor{ID: "user-a"}); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("recompute failure propagates", func(t *testing.T) {
		engineErr := errors.New("aggregation unavailable")
		repo := &MockReviewRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*models.Review, error) {
				return &models.Review{ID: id, UserID: "user-a", TourID: "tour-7"}, nil
			},
		}
		engine := &MockEngine{
			RecomputeFunc: func(ctx context.Context, tourID string) error { return engineErr },
		}
		svc := newService(repo, &MockTourRepository{}, engine)

		if err := svc.Delete(context.Background(), "rv-1", models.Actor{ID: "user-a"}); !errors.Is(err, engineErr) {
			t.Errorf("Delete() error = %v, want engine error", err)
		}
	})
}
