package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reservasalas/internal/domain"
)

// Mock repositories

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) CreateBatch(ctx context.Context, rs []*domain.Reservation) error {
	args := m.Called(ctx, rs)
	if args.Error(0) == nil {
		for i, r := range rs {
			r.ID = int64(100 + i) // simulate DB insert
		}
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) CancelActive(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) ListByParticipant(ctx context.Context, ci string) ([]domain.Reservation, error) {
	args := m.Called(ctx, ci)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByKey(ctx context.Context, building, name string) (*domain.Room, error) {
	args := m.Called(ctx, building, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockSanctionNotifier struct {
	mock.Mock
}

func (m *MockSanctionNotifier) NotifyCancellation(ctx context.Context, ci string, reservationID int64, reason string) error {
	args := m.Called(ctx, ci, reservationID, reason)
	return args.Error(0)
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(domain.DateLayout)
}

func testRoom() *domain.Room {
	return &domain.Room{Name: "Sala 6", Building: "El Central", Capacity: 10, Category: domain.CategoryGeneral}
}

func TestCreate_Success_AppendsCreator(t *testing.T) {
	reservations := new(MockReservationRepository)
	roomsRepo := new(MockRoomRepository)
	svc := NewService(reservations, roomsRepo, nil)

	roomsRepo.On("GetByKey", mock.Anything, "El Central", "Sala 6").Return(testRoom(), nil)
	reservations.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	actor := domain.Identity{CI: "22222222"}
	out, err := svc.Create(context.Background(), actor, CreateReservationRequest{
		RoomName:     "Sala 6",
		Building:     "El Central",
		Date:         futureDate(),
		SlotIDs:      []int{3},
		Participants: []string{"11111111"},
	})

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, domain.ReservationActive, out[0].Status)
	assert.Equal(t, "22222222", out[0].Creator)
	assert.Equal(t, []string{"11111111", "22222222"}, out[0].Participants)
	assert.True(t, out[0].HasParticipant("22222222"))
	reservations.AssertExpectations(t)
}

func TestCreate_TwoSlots_OneBatch(t *testing.T) {
	reservations := new(MockReservationRepository)
	roomsRepo := new(MockRoomRepository)
	svc := NewService(reservations, roomsRepo, nil)

	roomsRepo.On("GetByKey", mock.Anything, "El Central", "Sala 6").Return(testRoom(), nil)

	var batched []*domain.Reservation
	reservations.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		batched = args.Get(1).([]*domain.Reservation)
	}).Return(nil)

	out, err := svc.Create(context.Background(), domain.Identity{CI: "11111111"}, CreateReservationRequest{
		RoomName: "Sala 6",
		Building: "El Central",
		Date:     futureDate(),
		SlotIDs:  []int{3, 5},
	})

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Len(t, batched, 2)
	reservations.AssertNumberOfCalls(t, "CreateBatch", 1)
}

func TestCreate_PastDate(t *testing.T) {
	reservations := new(MockReservationRepository)
	roomsRepo := new(MockRoomRepository)
	svc := NewService(reservations, roomsRepo, nil)

	_, err := svc.Create(context.Background(), domain.Identity{CI: "11111111"}, CreateReservationRequest{
		RoomName: "Sala 6",
		Building: "El Central",
		Date:     "2020-01-01",
		SlotIDs:  []int{3},
	})

	assert.ErrorIs(t, err, ErrValidation)
	reservations.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestCreate_BadParticipantCI(t *testing.T) {
	svc := NewService(new(MockReservationRepository), new(MockRoomRepository), nil)

	_, err := svc.Create(context.Background(), domain.Identity{CI: "11111111"}, CreateReservationRequest{
		RoomName:     "Sala 6",
		Building:     "El Central",
		Date:         futureDate(),
		SlotIDs:      []int{3},
		Participants: []string{"not-a-ci"},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_UnknownSlot(t *testing.T) {
	svc := NewService(new(MockReservationRepository), new(MockRoomRepository), nil)

	_, err := svc.Create(context.Background(), domain.Identity{CI: "11111111"}, CreateReservationRequest{
		RoomName: "Sala 6",
		Building: "El Central",
		Date:     futureDate(),
		SlotIDs:  []int{99},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_RoomMissing(t *testing.T) {
	reservations := new(MockReservationRepository)
	roomsRepo := new(MockRoomRepository)
	svc := NewService(reservations, roomsRepo, nil)

	roomsRepo.On("GetByKey", mock.Anything, "Anexo", "Sala 99").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), domain.Identity{CI: "11111111"}, CreateReservationRequest{
		RoomName: "Sala 99",
		Building: "Anexo",
		Date:     futureDate(),
		SlotIDs:  []int{3},
	})

	assert.ErrorIs(t, err, ErrRoomNotFound)
	reservations.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestCreate_SlotTaken(t *testing.T) {
	duplicateErrs := map[string]error{
		"translated": gorm.ErrDuplicatedKey,
		"sqlite raw": errors.New("constraint failed: UNIQUE constraint failed: reservations.slot_id"),
	}

	for name, dupErr := range duplicateErrs {
		t.Run(name, func(t *testing.T) {
			reservations := new(MockReservationRepository)
			roomsRepo := new(MockRoomRepository)
			svc := NewService(reservations, roomsRepo, nil)

			roomsRepo.On("GetByKey", mock.Anything, "El Central", "Sala 6").Return(testRoom(), nil)
			reservations.On("CreateBatch", mock.Anything, mock.Anything).Return(dupErr)

			_, err := svc.Create(context.Background(), domain.Identity{CI: "11111111"}, CreateReservationRequest{
				RoomName: "Sala 6",
				Building: "El Central",
				Date:     futureDate(),
				SlotIDs:  []int{3},
			})

			assert.ErrorIs(t, err, ErrSlotTaken)
		})
	}
}

func activeReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:           42,
		RoomName:     "Sala 6",
		Building:     "El Central",
		Date:         futureDate(),
		SlotID:       3,
		Participants: []string{"11111111", "22222222"},
		Creator:      "22222222",
		Status:       domain.ReservationActive,
	}
}

func TestCancel_Success_NotifiesSanctions(t *testing.T) {
	reservations := new(MockReservationRepository)
	sanctions := new(MockSanctionNotifier)
	svc := NewService(reservations, new(MockRoomRepository), sanctions)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(activeReservation(), nil)
	reservations.On("CancelActive", mock.Anything, int64(42)).Return(true, nil)
	sanctions.On("NotifyCancellation", mock.Anything, "22222222", int64(42), mock.Anything).Return(nil)

	r, err := svc.Cancel(context.Background(), domain.Identity{CI: "11111111"}, 42)

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, r.Status)
	sanctions.AssertExpectations(t)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockRoomRepository), nil)

	cancelled := activeReservation()
	cancelled.Status = domain.ReservationCancelled
	reservations.On("GetByID", mock.Anything, int64(42)).Return(cancelled, nil)

	_, err := svc.Cancel(context.Background(), domain.Identity{CI: "11111111"}, 42)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	reservations.AssertNotCalled(t, "CancelActive", mock.Anything, mock.Anything)
}

func TestCancel_RaceLosesCleanly(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockRoomRepository), nil)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(activeReservation(), nil)
	reservations.On("CancelActive", mock.Anything, int64(42)).Return(false, nil)

	_, err := svc.Cancel(context.Background(), domain.Identity{CI: "11111111"}, 42)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_NotParticipant(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockRoomRepository), nil)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(activeReservation(), nil)

	_, err := svc.Cancel(context.Background(), domain.Identity{CI: "99999999"}, 42)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_AdminBypassesMembership(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockRoomRepository), nil)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(activeReservation(), nil)
	reservations.On("CancelActive", mock.Anything, int64(42)).Return(true, nil)

	_, err := svc.Cancel(context.Background(), domain.Identity{CI: "99999999", IsAdmin: true}, 42)

	assert.NoError(t, err)
}

func TestDelete_AdminOnly(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockRoomRepository), nil)

	err := svc.Delete(context.Background(), domain.Identity{CI: "11111111"}, 42)
	assert.ErrorIs(t, err, ErrForbidden)

	reservations.On("Delete", mock.Anything, int64(42)).Return(true, nil)
	err = svc.Delete(context.Background(), domain.Identity{CI: "22222222", IsAdmin: true}, 42)
	assert.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockRoomRepository), nil)

	reservations.On("Delete", mock.Anything, int64(7)).Return(false, nil)

	err := svc.Delete(context.Background(), domain.Identity{CI: "22222222", IsAdmin: true}, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAll_AdminOnly(t *testing.T) {
	reservations := new(MockReservationRepository)
	svc := NewService(reservations, new(MockRoomRepository), nil)

	_, err := svc.ListAll(context.Background(), domain.Identity{CI: "11111111"})
	assert.ErrorIs(t, err, ErrForbidden)

	reservations.On("ListAll", mock.Anything).Return([]domain.Reservation{}, nil)
	_, err = svc.ListAll(context.Background(), domain.Identity{CI: "22222222", IsAdmin: true})
	assert.NoError(t, err)
}
