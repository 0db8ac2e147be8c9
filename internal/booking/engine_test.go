package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

type fakeTicketStore struct {
	tiers []model.Ticket
	err   error
	calls int
}

func (f *fakeTicketStore) TiersByEvent(_ context.Context, _ uint64) ([]model.Ticket, error) {
	f.calls++
	return f.tiers, f.err
}

type fakeBookingStore struct {
	err     error
	created []*model.Booking
}

func (f *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
	if f.err != nil {
		return f.err
	}
	b.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, b)
	return nil
}

func twoTiers(normalQty, normalPrice, concQty, concPrice uint32) []model.Ticket {
	return []model.Ticket{
		{EventID: 1, Type: model.TierNormal, Quantity: normalQty, PriceCents: normalPrice},
		{EventID: 1, Type: model.TierConcession, Quantity: concQty, PriceCents: concPrice},
	}
}

func TestAvailability_NoTiers(t *testing.T) {
	eng := NewEngine(&fakeTicketStore{}, &fakeBookingStore{})

	av, err := eng.Availability(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, Availability{}, av)
}

func TestAvailability_FoldsByType(t *testing.T) {
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(5, 1000, 3, 500)}, &fakeBookingStore{})

	av, err := eng.Availability(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, Availability{
		NormalQty: 5, NormalPriceCents: 1000,
		ConcessionQty: 3, ConcessionPriceCents: 500,
	}, av)
}

func TestAvailability_DuplicateTierLastWins(t *testing.T) {
	tiers := []model.Ticket{
		{EventID: 1, Type: model.TierNormal, Quantity: 5, PriceCents: 1000},
		{EventID: 1, Type: model.TierNormal, Quantity: 2, PriceCents: 900},
	}
	eng := NewEngine(&fakeTicketStore{tiers: tiers}, &fakeBookingStore{})

	av, err := eng.Availability(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, uint32(2), av.NormalQty)
	assert.Equal(t, uint32(900), av.NormalPriceCents)
}

func TestAvailability_StorageError(t *testing.T) {
	eng := NewEngine(&fakeTicketStore{err: errors.New("connection reset")}, &fakeBookingStore{})

	_, err := eng.Availability(context.Background(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAvailabilityFetch)
}

func TestAvailability_Idempotent(t *testing.T) {
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(5, 1000, 3, 500)}, &fakeBookingStore{})

	first, err := eng.Availability(context.Background(), 1)
	require.NoError(t, err)
	second, err := eng.Availability(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidate(t *testing.T) {
	av := Availability{NormalQty: 5, ConcessionQty: 3}

	cases := []struct {
		name   string
		req    Request
		reason Reason // empty string means valid
	}{
		{"valid", Request{FullName: "Ada Lovelace", Email: "ada@example.com", NormalQty: 2}, ""},
		{"missing name", Request{Email: "ada@example.com", NormalQty: 2}, ReasonIncompleteFields},
		{"missing email", Request{FullName: "Ada Lovelace", NormalQty: 2}, ReasonIncompleteFields},
		{"blank name is missing", Request{FullName: "   ", Email: "a@b.c", NormalQty: 2}, ReasonIncompleteFields},
		{"no tickets", Request{FullName: "Ada Lovelace", Email: "ada@example.com"}, ReasonNoTicketsSelected},
		{"too many normal", Request{FullName: "Ada Lovelace", Email: "ada@example.com", NormalQty: 6}, ReasonInsufficientStock},
		{"too many concession", Request{FullName: "Ada Lovelace", Email: "ada@example.com", ConcessionQty: 4}, ReasonInsufficientStock},
		// fields are checked before stock: rule order matters
		{"missing fields wins over stock", Request{NormalQty: 99}, ReasonIncompleteFields},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verr := Validate(tc.req, av)
			if tc.reason == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tc.reason, verr.Reason)
		})
	}
}

func TestParseQty(t *testing.T) {
	assert.Equal(t, uint32(0), ParseQty(""))
	assert.Equal(t, uint32(0), ParseQty("abc"))
	assert.Equal(t, uint32(0), ParseQty("-3"))
	assert.Equal(t, uint32(7), ParseQty("7"))
	assert.Equal(t, uint32(2), ParseQty(" 2 "))
}

func TestBook_Success(t *testing.T) {
	bookings := &fakeBookingStore{}
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(5, 1000, 3, 500)}, bookings)

	b, err := eng.Book(context.Background(), 1, Request{
		FullName: "Ada Lovelace", Email: "ada@example.com", NormalQty: 2,
	})

	require.NoError(t, err)
	require.Len(t, bookings.created, 1)
	assert.Equal(t, uint64(1), b.EventID)
	assert.Equal(t, uint32(2), b.NormalQty)
	assert.Equal(t, uint32(0), b.ConcessionQty)
	assert.NotZero(t, b.ID)
}

func TestBook_ValidationFailureWritesNothing(t *testing.T) {
	bookings := &fakeBookingStore{}
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(5, 1000, 3, 500)}, bookings)

	_, err := eng.Book(context.Background(), 1, Request{FullName: "Ada", Email: "a@b.c"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonNoTicketsSelected, verr.Reason)
	assert.Empty(t, bookings.created)
}

func TestBook_RacedOutOfStock(t *testing.T) {
	// The snapshot pre-check passes, but the conditional decrement inside
	// the transaction loses the race and the store rolls back.
	bookings := &fakeBookingStore{err: repository.ErrInsufficientStock}
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(1, 1000, 0, 0)}, bookings)

	_, err := eng.Book(context.Background(), 1, Request{
		FullName: "Ada Lovelace", Email: "ada@example.com", NormalQty: 1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
	assert.Empty(t, bookings.created)
}

func TestBook_StorageError(t *testing.T) {
	storeErr := errors.New("deadlock found")
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(5, 1000, 3, 500)}, &fakeBookingStore{err: storeErr})

	_, err := eng.Book(context.Background(), 1, Request{
		FullName: "Ada Lovelace", Email: "ada@example.com", NormalQty: 1,
	})

	assert.ErrorIs(t, err, storeErr)
}

func TestPreview_Total(t *testing.T) {
	bookings := &fakeBookingStore{}
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(5, 1000, 3, 500)}, bookings)

	q, err := eng.Preview(context.Background(), 1, Request{
		FullName: "Ada Lovelace", Email: "ada@example.com", NormalQty: 2, ConcessionQty: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(3500), q.TotalCents)
	assert.Equal(t, uint32(1000), q.NormalPriceCents)
	assert.Equal(t, uint32(500), q.ConcessionPriceCents)
	assert.Empty(t, bookings.created)
}

func TestPreview_DoesNotCheckStock(t *testing.T) {
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(1, 1000, 0, 0)}, &fakeBookingStore{})

	q, err := eng.Preview(context.Background(), 1, Request{
		FullName: "Ada Lovelace", Email: "ada@example.com", NormalQty: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(10000), q.TotalCents)
}

func TestPreview_IncompleteFields(t *testing.T) {
	eng := NewEngine(&fakeTicketStore{tiers: twoTiers(5, 1000, 3, 500)}, &fakeBookingStore{})

	_, err := eng.Preview(context.Background(), 1, Request{NormalQty: 2})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonIncompleteFields, verr.Reason)
}
