package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	bookingRepo "ceylonescape/database/repository/booking"
	tourRepo "ceylonescape/database/repository/tour"
	"ceylonescape/models"

	"go.uber.org/zap"
)

// MockBookingRepository is a func-field mock of bookingRepo.BookingRepository.
type MockBookingRepository struct {
	CreateFunc       func(ctx context.Context, b *models.Booking) error
	GetByIDFunc      func(ctx context.Context, id string) (*models.Booking, error)
	UpdateFunc       func(ctx context.Context, b *models.Booking) error
	UpdateStatusFunc func(ctx context.Context, id, status string) error
	DeleteFunc       func(ctx context.Context, id string) error
	ListFunc         func(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetails, error)
}

func (m *MockBookingRepository) Create(ctx context.Context, b *models.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, bookingRepo.ErrNotFound
}

func (m *MockBookingRepository) Update(ctx context.Context, b *models.Booking) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, b)
	}
	return nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetails, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []models.BookingDetails{}, nil
}

// MockTourRepository is a func-field mock of tourRepo.TourRepository.
type MockTourRepository struct {
	GetByIDFunc             func(ctx context.Context, id string) (*models.Tour, error)
	UpdateRatingSummaryFunc func(ctx context.Context, id string, average float64, quantity int64) error
}

func (m *MockTourRepository) Create(ctx context.Context, t *models.Tour) error { return nil }

func (m *MockTourRepository) GetByID(ctx context.Context, id string) (*models.Tour, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.Tour{ID: id, Title: "Sigiriya Rock"}, nil
}

func (m *MockTourRepository) GetAll(ctx context.Context) ([]models.Tour, error) { return nil, nil }

func (m *MockTourRepository) Update(ctx context.Context, id string, input models.TourInput) (*models.Tour, error) {
	return nil, nil
}

func (m *MockTourRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *MockTourRepository) UpdateRatingSummary(ctx context.Context, id string, average float64, quantity int64) error {
	if m.UpdateRatingSummaryFunc != nil {
		return m.UpdateRatingSummaryFunc(ctx, id, average, quantity)
	}
	return nil
}

func newService(repo *MockBookingRepository, tours *MockTourRepository) *DefaultBookingService {
	return &DefaultBookingService{Repo: repo, Tours: tours, Logger: zap.NewNop()}
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		tourID      string
		date        string
		setupMocks  func(*MockBookingRepository, *MockTourRepository)
		wantErr     error
		wantValErr  bool
		wantPending bool
	}{
		{
			name:        "successful booking",
			userID:      "user-a",
			tourID:      "tour-7",
			date:        "2025-03-01",
			wantPending: true,
		},
		{
			name:       "missing user",
			tourID:     "tour-7",
			date:       "2025-03-01",
			wantValErr: true,
		},
		{
			name:       "malformed date",
			userID:     "user-a",
			tourID:     "tour-7",
			date:       "March 1st",
			wantValErr: true,
		},
		{
			name:   "unknown tour",
			userID: "user-a",
			tourID: "tour-missing",
			date:   "2025-03-01",
			setupMocks: func(br *MockBookingRepository, tr *MockTourRepository) {
				tr.GetByIDFunc = func(ctx context.Context, id string) (*models.Tour, error) {
					return nil, tourRepo.ErrNotFound
				}
			},
			wantValErr: true,
		},
		{
			name:   "duplicate booking",
			userID: "user-a",
			tourID: "tour-7",
			date:   "2025-03-01",
			setupMocks: func(br *MockBookingRepository, tr *MockTourRepository) {
				br.CreateFunc = func(ctx context.Context, b *models.Booking) error {
					return bookingRepo.ErrDuplicate
				}
			},
			wantErr: ErrDuplicateBooking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockBookingRepository{}
			tours := &MockTourRepository{}
			if tt.setupMocks != nil {
				tt.setupMocks(repo, tours)
			}
			svc := newService(repo, tours)

			b, err := svc.Create(context.Background(), tt.userID, tt.tourID, tt.date)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantValErr {
				if !IsValidation(err) {
					t.Errorf("Create() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() unexpected error = %v", err)
			}
			if tt.wantPending && b.Status != models.BookingStatusPending {
				t.Errorf("Create() status = %q, want %q", b.Status, models.BookingStatusPending)
			}
			if b.ID == "" {
				t.Error("Create() expected generated booking ID, got empty")
			}
		})
	}
}

func TestCreateBookingDuplicateMessage(t *testing.T) {
	repo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, b *models.Booking) error {
			return bookingRepo.ErrDuplicate
		},
	}
	svc := newService(repo, &MockTourRepository{})

	_, err := svc.Create(context.Background(), "user-a", "tour-7", "2025-03-01")
	if err == nil || err.Error() != DuplicateBookingMessage {
		t.Errorf("Create() error = %v, want fixed duplicate message %q", err, DuplicateBookingMessage)
	}
}

// TestConcurrentCreate checks that two racing admissions for the same
// (user, tour, date) yield exactly one success and one duplicate, with the
// store arbitrating instead of an application lock.
func TestConcurrentCreate(t *testing.T) {
	var mu sync.Mutex
	taken := make(map[string]bool)

	repo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, b *models.Booking) error {
			mu.Lock()
			defer mu.Unlock()
			key := b.UserID + "|" + b.TourID + "|" + b.BookingDate
			if taken[key] {
				return bookingRepo.ErrDuplicate
			}
			taken[key] = true
			return nil
		},
	}
	svc := newService(repo, &MockTourRepository{})

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), "user-a", "tour-7", "2025-03-01")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrDuplicateBooking):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || duplicates != 1 {
		t.Errorf("got %d successes and %d duplicates, want exactly 1 and 1", successes, duplicates)
	}
}

// TestCancelFreesSlot checks the round-trip: create, cancel, create again for
// the same (user, tour, date) must succeed with no residual row in the way.
func TestCancelFreesSlot(t *testing.T) {
	var mu sync.Mutex
	taken := make(map[string]bool) // composite key -> exists
	ids := make(map[string]string) // booking id -> composite key

	repo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, b *models.Booking) error {
			mu.Lock()
			defer mu.Unlock()
			key := b.UserID + "|" + b.TourID + "|" + b.BookingDate
			if taken[key] {
				return bookingRepo.ErrDuplicate
			}
			taken[key] = true
			ids[b.ID] = key
			return nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			mu.Lock()
			defer mu.Unlock()
			key, ok := ids[id]
			if !ok {
				return bookingRepo.ErrNotFound
			}
			delete(taken, key)
			delete(ids, id)
			return nil
		},
	}
	svc := newService(repo, &MockTourRepository{})
	ctx := context.Background()

	first, err := svc.Create(ctx, "user-a", "tour-7", "2025-03-01")
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	if err := svc.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, err := svc.Create(ctx, "user-a", "tour-7", "2025-03-01"); err != nil {
		t.Errorf("Create() after cancel error = %v, want success", err)
	}
}

// TestSameSlotDifferentUser checks that the uniqueness invariant is scoped to
// the user: a second user may book the same tour and date.
func TestSameSlotDifferentUser(t *testing.T) {
	var mu sync.Mutex
	taken := make(map[string]bool)

	repo := &MockBookingRepository{
		CreateFunc: func(ctx context.Context, b *models.Booking) error {
			mu.Lock()
			defer mu.Unlock()
			key := b.UserID + "|" + b.TourID + "|" + b.BookingDate
			if taken[key] {
				return bookingRepo.ErrDuplicate
			}
			taken[key] = true
			return nil
		},
	}
	svc := newService(repo, &MockTourRepository{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-a", "tour-7", "2025-03-01"); err != nil {
		t.Fatalf("user A Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, "user-a", "tour-7", "2025-03-01"); !errors.Is(err, ErrDuplicateBooking) {
		t.Errorf("user A repeat Create() error = %v, want ErrDuplicateBooking", err)
	}
	if _, err := svc.Create(ctx, "user-b", "tour-7", "2025-03-01"); err != nil {
		t.Errorf("user B Create() error = %v, want success", err)
	}
}

func TestUpdateBooking(t *testing.T) {
	existing := &models.Booking{
		ID:          "bk-1",
		UserID:      "user-a",
		TourID:      "tour-7",
		BookingDate: "2025-03-01",
		Status:      models.BookingStatusPending,
	}
	newDate := "2025-03-02"
	badStatus := "paid"

	tests := []struct {
		name       string
		id         string
		patch      models.BookingUpdate
		setupMocks func(*MockBookingRepository)
		wantErr    error
		wantValErr bool
	}{
		{
			name:  "date change accepted",
			id:    "bk-1",
			patch: models.BookingUpdate{BookingDate: &newDate},
		},
		{
			name:  "date change collides",
			id:    "bk-1",
			patch: models.BookingUpdate{BookingDate: &newDate},
			setupMocks: func(br *MockBookingRepository) {
				br.UpdateFunc = func(ctx context.Context, b *models.Booking) error {
					return bookingRepo.ErrDuplicate
				}
			},
			wantErr: ErrDuplicateBooking,
		},
		{
			name:       "invalid status rejected",
			id:         "bk-1",
			patch:      models.BookingUpdate{Status: &badStatus},
			wantValErr: true,
		},
		{
			name:    "unknown booking",
			id:      "bk-missing",
			patch:   models.BookingUpdate{BookingDate: &newDate},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockBookingRepository{
				GetByIDFunc: func(ctx context.Context, id string) (*models.Booking, error) {
					if id == existing.ID {
						cp := *existing
						return &cp, nil
					}
					return nil, bookingRepo.ErrNotFound
				},
			}
			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}
			svc := newService(repo, &MockTourRepository{})

			_, err := svc.Update(context.Background(), tt.id, tt.patch)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Update() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantValErr {
				if !IsValidation(err) {
					t.Errorf("Update() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Update() unexpected error = %v", err)
			}
		})
	}
}
