package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusQueued, true},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusQueued, StatusQueued, true},
		{StatusQueued, StatusApproved, true},
		{StatusQueued, StatusCancelled, true},
		{StatusQueued, StatusPending, false},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusQueued, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusPending, BookingStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_Flags(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())

	assert.True(t, StatusQueued.ChatEnabled())
	assert.True(t, StatusApproved.ChatEnabled())
	assert.False(t, StatusPending.ChatEnabled())
	assert.False(t, StatusCompleted.ChatEnabled())

	assert.False(t, BookingStatus("archived").IsValid())
}

func TestBookingQuery_Matches(t *testing.T) {
	t.Parallel()

	b := &Booking{UserID: "u1", Status: StatusQueued}

	assert.True(t, BookingQuery{}.Matches(b))
	assert.True(t, BookingQuery{UserID: "u1"}.Matches(b))
	assert.False(t, BookingQuery{UserID: "u2"}.Matches(b))
	assert.True(t, BookingQuery{Statuses: []BookingStatus{StatusQueued, StatusApproved}}.Matches(b))
	assert.False(t, BookingQuery{UserID: "u1", Statuses: []BookingStatus{StatusPending}}.Matches(b))
}

func TestSummarizeBookings(t *testing.T) {
	t.Parallel()

	stats := SummarizeBookings([]*Booking{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusQueued},
		{Status: StatusApproved},
		{Status: StatusCompleted},
		{Status: StatusCancelled},
	})

	assert.Equal(t, BookingStats{Total: 6, Pending: 2, Queued: 1, Approved: 1, Completed: 1, Cancelled: 1}, stats)
}

func TestGroupByProvince_KeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	groups := GroupByProvince([]Location{
		{Name: "Sandton", Province: "Gauteng"},
		{Name: "Durban", Province: "KwaZulu-Natal"},
		{Name: "Soweto", Province: "Gauteng"},
	})

	if assert.Len(t, groups, 2) {
		assert.Equal(t, "Gauteng", groups[0].Province)
		assert.Len(t, groups[0].Locations, 2)
		assert.Equal(t, "KwaZulu-Natal", groups[1].Province)
	}

	assert.True(t, Location{Name: "Pretoria CBD"}.NameEquals("  pretoria cbd "))
}
