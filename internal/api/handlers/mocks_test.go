package handlers_test

import (
	"context"

	"github.com/shareit/backend/internal/application/services"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, name, email string) (*entities.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id int64, update services.UserUpdate) (*entities.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Create(ctx context.Context, ownerID int64, in services.NewItem) (*entities.Item, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemService) Update(ctx context.Context, itemID, ownerID int64, update services.ItemUpdate) (*entities.Item, error) {
	args := m.Called(ctx, itemID, ownerID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemService) GetByID(ctx context.Context, requesterID, itemID int64) (*entities.Item, error) {
	args := m.Called(ctx, requesterID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*entities.Item, error) {
	args := m.Called(ctx, ownerID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Item), args.Error(1)
}

func (m *MockItemService) Search(ctx context.Context, text string, from, size int) ([]*entities.Item, error) {
	args := m.Called(ctx, text, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Item), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Add(ctx context.Context, authorID, itemID int64, text string) (*entities.Comment, error) {
	args := m.Called(ctx, authorID, itemID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

type MockItemRequestService struct {
	mock.Mock
}

func (m *MockItemRequestService) Create(ctx context.Context, requesterID int64, description string) (*entities.ItemRequest, error) {
	args := m.Called(ctx, requesterID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ItemRequest), args.Error(1)
}

func (m *MockItemRequestService) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.ItemRequest, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ItemRequest), args.Error(1)
}

func (m *MockItemRequestService) ListAllButOwner(ctx context.Context, userID int64, from, size int) ([]*entities.ItemRequest, error) {
	args := m.Called(ctx, userID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ItemRequest), args.Error(1)
}

func (m *MockItemRequestService) GetByID(ctx context.Context, viewerID, requestID int64) (*entities.ItemRequest, error) {
	args := m.Called(ctx, viewerID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ItemRequest), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, bookerID int64, in services.NewBooking) (*entities.Booking, error) {
	args := m.Called(ctx, bookerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingService) Decide(ctx context.Context, bookingID, deciderID int64, approved bool) (*entities.Booking, error) {
	args := m.Called(ctx, bookingID, deciderID, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingService) GetByID(ctx context.Context, bookingID, viewerID int64) (*entities.Booking, error) {
	args := m.Called(ctx, bookingID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingService) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*entities.Booking, error) {
	args := m.Called(ctx, bookerID, state, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingService) ListByOwnedItems(ctx context.Context, ownerID int64, state string, from, size int) ([]*entities.Booking, error) {
	args := m.Called(ctx, ownerID, state, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}
