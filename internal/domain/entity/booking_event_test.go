package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingEvent_TypeFollowsPayload(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	reason := "Customer unavailable"

	event, err := NewBookingEvent("b-1", StatusChangedPayload{
		From:               BookingStatusAssigned,
		To:                 BookingStatusCancelled,
		UpdatedBy:          "customer-1",
		CancellationReason: &reason,
	}, "customer-1", ActorTypeCustomer, at)
	require.NoError(t, err)

	assert.Equal(t, EventTypeStatusUpdated, event.EventType)
	assert.Equal(t, "b-1", event.BookingID)
	assert.True(t, at.Equal(event.CreatedAt))
	assert.JSONEq(t, `{"from":"assigned","to":"cancelled","updatedBy":"customer-1","cancellationReason":"Customer unavailable"}`, string(event.EventData))

	payload, err := event.Payload()
	require.NoError(t, err)
	changed, ok := payload.(StatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, BookingStatusCancelled, changed.To)
	assert.Equal(t, reason, *changed.CancellationReason)
}

func TestBookingEvent_PayloadVariants(t *testing.T) {
	created, err := NewBookingEvent("b-1", CreatedPayload{BookingData: BookingSnapshot{CustomerID: "c-1", ServiceType: "cleaning"}}, "c-1", ActorTypeCustomer, time.Now())
	require.NoError(t, err)
	payload, err := created.Payload()
	require.NoError(t, err)
	assert.Equal(t, "cleaning", payload.(CreatedPayload).BookingData.ServiceType)

	assigned, err := NewBookingEvent("b-1", ProviderAssignedPayload{ProviderID: "provider-2"}, SystemActor, ActorTypeSystem, time.Now())
	require.NoError(t, err)
	assert.JSONEq(t, `{"providerId":"provider-2"}`, string(assigned.EventData))

	unknown := &BookingEvent{EventType: EventType("deleted"), EventData: JSON(`{}`)}
	_, err = unknown.Payload()
	assert.Error(t, err)
}

func TestJSON_PassesThroughWhenEncoded(t *testing.T) {
	event := BookingEvent{ID: 7, EventType: EventTypeProviderAssigned, EventData: JSON(`{"providerId":"provider-1"}`)}

	b, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, map[string]interface{}{"providerId": "provider-1"}, decoded["event_data"])

	var empty JSON
	out, err := empty.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	var scanned JSON
	require.NoError(t, scanned.Scan(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, string(scanned))
	assert.Error(t, scanned.Scan(3.14))
}
