package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

type mockShowStore struct {
	mock.Mock
}

func (m *mockShowStore) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*model.Show), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) Reserve(ctx context.Context, userID, showID uint64, seats uint32) (*model.Booking, error) {
	args := m.Called(ctx, userID, showID, seats)
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, userID)
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) SettlePayment(ctx context.Context, bookingID, userID uint64, method model.PaymentMethod, paymentID string, approved bool) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, userID, method, paymentID, approved)
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}
