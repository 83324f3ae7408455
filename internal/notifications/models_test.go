package notifications

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotification_RoundTrip(t *testing.T) {
	n := newNotification(TypeBookingCreated)
	n.BookingID = "b-1"
	n.UserID = "u-1"
	n.ShowtimeID = "s-1"
	n.Seats = []string{"A-1", "A-2"}
	n.TotalAmount = 25.0

	payload, err := n.ToJSON()
	require.NoError(t, err)

	var decoded Notification
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, TypeBookingCreated, decoded.Type)
	assert.Equal(t, "b-1", decoded.BookingID)
	assert.Equal(t, []string{"A-1", "A-2"}, decoded.Seats)
	assert.NotEmpty(t, decoded.ID)
}

func TestNotification_PartitionKeyIsBookingID(t *testing.T) {
	created := newNotification(TypeBookingCreated)
	created.BookingID = "b-42"
	cancelled := newNotification(TypeBookingCancelled)
	cancelled.BookingID = "b-42"

	// Same booking, same partition: lifecycle events stay ordered
	assert.Equal(t, created.PartitionKey(), cancelled.PartitionKey())
}

func TestNotification_OmitsEmptyPaymentFields(t *testing.T) {
	n := newNotification(TypeBookingCancelled)
	n.BookingID = "b-1"
	n.UserID = "u-1"

	payload, err := n.ToJSON()
	require.NoError(t, err)

	assert.NotContains(t, string(payload), "transaction_id")
	assert.NotContains(t, string(payload), "total_amount")
}
