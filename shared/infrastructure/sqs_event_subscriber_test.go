package infrastructure

import (
	"testing"

	"github.com/merchly/order-system/shared/events"
	"github.com/stretchr/testify/assert"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name: "valid event",
			body: `{"id":"evt-1","event_type":"tracking.status.updated","data":{"order_number":"ord-1","status":"SHIPPED"}}`,
		},
		{
			name:          "malformed JSON",
			body:          `{not json`,
			expectedError: "invalid event payload",
		},
		{
			name:          "null body decodes to nil and is rejected",
			body:          `null`,
			expectedError: "empty event payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := decodeEvent(tt.body)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, event)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, events.TrackingStatusUpdatedEvent, event.EventType)
			}
		})
	}
}
