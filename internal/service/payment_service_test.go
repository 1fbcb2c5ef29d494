package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

func pendingBooking() *model.Booking {
	return &model.Booking{
		ID:            11,
		UserID:        42,
		ShowID:        7,
		SeatsBooked:   3,
		TotalPrice:    decimal.RequireFromString("750.00"),
		PaymentStatus: model.PaymentPending,
	}
}

func validCardRequest() service.PaymentRequest {
	return service.PaymentRequest{
		Method:     model.MethodCreditCard,
		CardNumber: "1234567812345678",
		CardHolder: "John Doe",
		ExpiryDate: "12/25",
		CVV:        "123",
	}
}

// alwaysApprove / alwaysDecline pin the probabilistic outcome.
func alwaysApprove() float64 { return 0.99 }
func alwaysDecline() float64 { return 0.0 }

func TestPay_CardApproved(t *testing.T) {
	bookings := new(mockBookingStore)
	svc := service.NewPaymentService(bookings, 0.1, alwaysApprove)
	ctx := context.Background()

	method := model.MethodCreditCard
	payID := "PAY3F0A9C21D4E5"
	now := time.Now().UTC()
	completed := pendingBooking()
	completed.PaymentStatus = model.PaymentCompleted
	completed.PaymentMethod = &method
	completed.PaymentID = &payID
	completed.PaymentDate = &now

	bookings.On("GetByIDForUser", ctx, uint64(11), uint64(42)).Return(pendingBooking(), nil)
	bookings.On("SettlePayment", ctx, uint64(11), uint64(42), model.MethodCreditCard,
		mock.MatchedBy(func(id string) bool {
			return len(id) == 15 && id[:3] == "PAY"
		}), true).Return(completed, nil)

	b, fresh, err := svc.Pay(ctx, 42, 11, validCardRequest())

	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, model.PaymentCompleted, b.PaymentStatus)
	require.NotNil(t, b.PaymentMethod)
	assert.Equal(t, model.MethodCreditCard, *b.PaymentMethod)
	bookings.AssertExpectations(t)
}

func TestPay_CardDeclined(t *testing.T) {
	bookings := new(mockBookingStore)
	svc := service.NewPaymentService(bookings, 0.1, alwaysDecline)
	ctx := context.Background()

	failed := pendingBooking()
	failed.PaymentStatus = model.PaymentFailed

	bookings.On("GetByIDForUser", ctx, uint64(11), uint64(42)).Return(pendingBooking(), nil)
	bookings.On("SettlePayment", ctx, uint64(11), uint64(42), model.MethodCreditCard,
		mock.AnythingOfType("string"), false).Return(failed, nil)

	b, fresh, err := svc.Pay(ctx, 42, 11, validCardRequest())

	assert.ErrorIs(t, err, service.ErrPaymentDeclined)
	assert.False(t, fresh)
	require.NotNil(t, b)
	assert.Equal(t, model.PaymentFailed, b.PaymentStatus)
	// A declined payment records nothing.
	assert.Nil(t, b.PaymentMethod)
	assert.Nil(t, b.PaymentID)
	assert.Nil(t, b.PaymentDate)
}

func TestPay_CompletedBookingIsNoOp(t *testing.T) {
	bookings := new(mockBookingStore)
	svc := service.NewPaymentService(bookings, 0.1, alwaysDecline)
	ctx := context.Background()

	method := model.MethodUPI
	payID := "PAY0123456789AB"
	when := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	done := pendingBooking()
	done.PaymentStatus = model.PaymentCompleted
	done.PaymentMethod = &method
	done.PaymentID = &payID
	done.PaymentDate = &when

	bookings.On("GetByIDForUser", ctx, uint64(11), uint64(42)).Return(done, nil)

	b, fresh, err := svc.Pay(ctx, 42, 11, validCardRequest())

	require.NoError(t, err)
	assert.False(t, fresh, "an already-completed booking is not a fresh completion")
	assert.Equal(t, payID, *b.PaymentID)
	assert.Equal(t, when, *b.PaymentDate)
	bookings.AssertNotCalled(t, "SettlePayment")
}

func TestPay_RequiresAuthentication(t *testing.T) {
	svc := service.NewPaymentService(new(mockBookingStore), 0.1, nil)

	_, _, err := svc.Pay(context.Background(), 0, 11, validCardRequest())

	assert.ErrorIs(t, err, service.ErrAuthenticationRequired)
}

func TestPay_UnknownMethod(t *testing.T) {
	bookings := new(mockBookingStore)
	svc := service.NewPaymentService(bookings, 0.1, nil)
	ctx := context.Background()

	bookings.On("GetByIDForUser", ctx, uint64(11), uint64(42)).Return(pendingBooking(), nil)

	_, _, err := svc.Pay(ctx, 42, 11, service.PaymentRequest{Method: "CASH"})

	assert.ErrorIs(t, err, service.ErrInvalidRequest)
}

func TestPay_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  service.PaymentRequest
		want []string
	}{
		{
			name: "card number too short",
			req: service.PaymentRequest{
				Method: model.MethodCreditCard, CardNumber: "1234",
				CardHolder: "John Doe", ExpiryDate: "12/25", CVV: "123",
			},
			want: []string{"Invalid card number. Must be 16 digits."},
		},
		{
			name: "card number not numeric",
			req: service.PaymentRequest{
				Method: model.MethodDebitCard, CardNumber: "12345678abcd5678",
				CardHolder: "John Doe", ExpiryDate: "12/25", CVV: "123",
			},
			want: []string{"Invalid card number. Must be 16 digits."},
		},
		{
			name: "everything wrong on card",
			req:  service.PaymentRequest{Method: model.MethodCreditCard},
			want: []string{
				"Invalid card number. Must be 16 digits.",
				"Please enter card holder name.",
				"Invalid expiry date. Format: MM/YY",
				"Invalid CVV. Must be 3 digits.",
			},
		},
		{
			name: "upi without at sign",
			req:  service.PaymentRequest{Method: model.MethodUPI, UPIID: "nouatmark"},
			want: []string{"Invalid UPI ID. Format: username@bank"},
		},
		{
			name: "net banking without bank",
			req:  service.PaymentRequest{Method: model.MethodNetBanking},
			want: []string{"Please select a bank."},
		},
		{
			name: "wallet without wallet type",
			req:  service.PaymentRequest{Method: model.MethodWallet, WalletType: "  "},
			want: []string{"Please select a wallet."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := new(mockBookingStore)
			svc := service.NewPaymentService(bookings, 0.1, alwaysApprove)
			ctx := context.Background()

			bookings.On("GetByIDForUser", ctx, uint64(11), uint64(42)).Return(pendingBooking(), nil)

			_, _, err := svc.Pay(ctx, 42, 11, tc.req)

			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.want, verr.Messages)
			// No state change on validation failure.
			bookings.AssertNotCalled(t, "SettlePayment")
		})
	}
}

func TestPay_CardNumberSpacesStripped(t *testing.T) {
	bookings := new(mockBookingStore)
	svc := service.NewPaymentService(bookings, 0.1, alwaysApprove)
	ctx := context.Background()

	completed := pendingBooking()
	completed.PaymentStatus = model.PaymentCompleted

	bookings.On("GetByIDForUser", ctx, uint64(11), uint64(42)).Return(pendingBooking(), nil)
	bookings.On("SettlePayment", ctx, uint64(11), uint64(42), model.MethodCreditCard,
		mock.AnythingOfType("string"), true).Return(completed, nil)

	req := validCardRequest()
	req.CardNumber = "1234 5678 1234 5678"

	_, _, err := svc.Pay(ctx, 42, 11, req)

	require.NoError(t, err)
}
