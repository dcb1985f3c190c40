package rooms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reservasalas/internal/domain"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByKey(ctx context.Context, building, name string) (*domain.Room, error) {
	args := m.Called(ctx, building, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) SetManualStatus(ctx context.Context, building, name string, value *domain.RoomStatus) error {
	args := m.Called(ctx, building, name, value)
	return args.Error(0)
}

type MockReservationCounter struct {
	mock.Mock
}

func (m *MockReservationCounter) CountActiveAt(ctx context.Context, building, roomName, date string, slotID int) (int64, error) {
	args := m.Called(ctx, building, roomName, date, slotID)
	return args.Get(0).(int64), args.Error(1)
}

var admin = domain.Identity{CI: "22222222", IsAdmin: true}

func TestEffectiveStatus_OverrideWins(t *testing.T) {
	roomsRepo := new(MockRoomRepository)
	counter := new(MockReservationCounter)
	svc := NewService(roomsRepo, counter)

	oos := domain.StatusOutOfService
	roomsRepo.On("GetByKey", mock.Anything, "El Central", "Sala 6").Return(&domain.Room{
		Name: "Sala 6", Building: "El Central", ManualStatus: &oos,
	}, nil)

	// Inside the service day, zero active reservations: computed would say
	// available, the override must still win.
	now := time.Date(2030, 3, 10, 10, 30, 0, 0, time.Local)
	st, err := svc.EffectiveStatus(context.Background(), "El Central", "Sala 6", now)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfService, st)
	counter.AssertNotCalled(t, "CountActiveAt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEffectiveStatus_ComputedOccupied(t *testing.T) {
	roomsRepo := new(MockRoomRepository)
	counter := new(MockReservationCounter)
	svc := NewService(roomsRepo, counter)

	roomsRepo.On("GetByKey", mock.Anything, "El Central", "Sala 6").Return(&domain.Room{
		Name: "Sala 6", Building: "El Central",
	}, nil)

	// 10:30 falls inside slot 3 (10:00-11:00).
	now := time.Date(2030, 3, 10, 10, 30, 0, 0, time.Local)
	counter.On("CountActiveAt", mock.Anything, "El Central", "Sala 6", "2030-03-10", 3).Return(int64(1), nil)

	st, err := svc.EffectiveStatus(context.Background(), "El Central", "Sala 6", now)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOccupied, st)
}

func TestEffectiveStatus_ComputedAvailable(t *testing.T) {
	roomsRepo := new(MockRoomRepository)
	counter := new(MockReservationCounter)
	svc := NewService(roomsRepo, counter)

	roomsRepo.On("GetByKey", mock.Anything, "El Central", "Sala 6").Return(&domain.Room{
		Name: "Sala 6", Building: "El Central",
	}, nil)
	counter.On("CountActiveAt", mock.Anything, "El Central", "Sala 6", "2030-03-10", 3).Return(int64(0), nil)

	now := time.Date(2030, 3, 10, 10, 30, 0, 0, time.Local)
	st, err := svc.EffectiveStatus(context.Background(), "El Central", "Sala 6", now)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, st)
}

func TestComputedStatus_OutsideServiceDay(t *testing.T) {
	counter := new(MockReservationCounter)
	svc := NewService(new(MockRoomRepository), counter)

	now := time.Date(2030, 3, 10, 23, 30, 0, 0, time.Local)
	st, err := svc.ComputedStatus(context.Background(), "El Central", "Sala 6", now)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, st)
	counter.AssertNotCalled(t, "CountActiveAt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEffectiveStatus_RoomMissing(t *testing.T) {
	roomsRepo := new(MockRoomRepository)
	svc := NewService(roomsRepo, new(MockReservationCounter))

	roomsRepo.On("GetByKey", mock.Anything, "Anexo", "Sala 99").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.EffectiveStatus(context.Background(), "Anexo", "Sala 99", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetManualOverride_AdminOnly(t *testing.T) {
	roomsRepo := new(MockRoomRepository)
	svc := NewService(roomsRepo, new(MockReservationCounter))

	v := domain.StatusImpaired
	err := svc.SetManualOverride(context.Background(), domain.Identity{CI: "11111111"}, "El Central", "Sala 6", &v)
	assert.ErrorIs(t, err, ErrForbidden)
	roomsRepo.AssertNotCalled(t, "SetManualStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetManualOverride_InvalidValue(t *testing.T) {
	svc := NewService(new(MockRoomRepository), new(MockReservationCounter))

	v := domain.RoomStatus("broken")
	err := svc.SetManualOverride(context.Background(), admin, "El Central", "Sala 6", &v)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetManualOverride_ClearWithNil(t *testing.T) {
	roomsRepo := new(MockRoomRepository)
	svc := NewService(roomsRepo, new(MockReservationCounter))

	roomsRepo.On("SetManualStatus", mock.Anything, "El Central", "Sala 6", (*domain.RoomStatus)(nil)).Return(nil)

	err := svc.SetManualOverride(context.Background(), admin, "El Central", "Sala 6", nil)
	assert.NoError(t, err)
	roomsRepo.AssertExpectations(t)
}

func TestCreateRoom(t *testing.T) {
	roomsRepo := new(MockRoomRepository)
	svc := NewService(roomsRepo, new(MockReservationCounter))

	req := CreateRoomRequest{Name: "Sala 7", Building: "El Central", Capacity: 8, Category: "general"}

	_, err := svc.CreateRoom(context.Background(), domain.Identity{CI: "11111111"}, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateRoom(context.Background(), admin, CreateRoomRequest{Name: "x", Building: "y", Capacity: 1, Category: "penthouse"})
	assert.ErrorIs(t, err, ErrValidation)

	roomsRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()
	_, err = svc.CreateRoom(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	roomsRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	room, err := svc.CreateRoom(context.Background(), admin, req)
	assert.NoError(t, err)
	assert.Equal(t, domain.CategoryGeneral, room.Category)
	assert.Nil(t, room.ManualStatus)
}

func TestList_UsesOverrideOrComputed(t *testing.T) {
	roomsRepo := new(MockRoomRepository)
	counter := new(MockReservationCounter)
	svc := NewService(roomsRepo, counter)

	oos := domain.StatusOutOfService
	roomsRepo.On("List", mock.Anything).Return([]domain.Room{
		{Name: "Sala 6", Building: "El Central", ManualStatus: &oos},
		{Name: "Sala 1", Building: "El Central"},
	}, nil)
	counter.On("CountActiveAt", mock.Anything, "El Central", "Sala 1", "2030-03-10", 3).Return(int64(0), nil)

	now := time.Date(2030, 3, 10, 10, 30, 0, 0, time.Local)
	views, err := svc.List(context.Background(), now)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, domain.StatusOutOfService, views[0].EffectiveStatus)
	assert.Equal(t, domain.StatusAvailable, views[1].EffectiveStatus)
}
