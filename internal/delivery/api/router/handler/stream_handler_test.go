package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamFrameEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		frame streamFrame
		want  string
	}{
		{
			name:  "snapshot",
			frame: streamFrame{Type: frameTypeSnapshot, Data: []string{"b2", "b1"}},
			want:  `{"type":"snapshot","data":["b2","b1"]}`,
		},
		{
			name:  "error",
			frame: streamFrame{Type: frameTypeError, Error: &frameError{Code: "BOOKING_NOT_FOUND", Message: "Booking not found"}},
			want:  `{"type":"error","error":{"code":"BOOKING_NOT_FOUND","message":"Booking not found"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, err := json.Marshal(tt.frame)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}
