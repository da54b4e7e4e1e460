package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_GenerateCheckInQR(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		level string
		want  int
	}{
		{"low correction", 128, "L", 128},
		{"medium correction", 256, "M", 256},
		{"highest correction", 512, "h", 512},
		{"unknown level and default size", 0, "bogus", 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.level, "https://studio.test/check-in")

			pngBytes, err := svc.GenerateCheckInQR("bk-123")
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(pngBytes))
			require.NoError(t, err)
			assert.Equal(t, tt.want, img.Bounds().Dx())
		})
	}
}

func TestQRCodeService_GenerateCheckInQR_RequiresID(t *testing.T) {
	_, err := NewQRCodeService(256, "M", "").GenerateCheckInQR("")
	assert.Error(t, err)
}

func TestQRCodeService_ParseCheckInQR(t *testing.T) {
	svc := NewQRCodeService(256, "M", "https://studio.test/check-in")

	id, err := svc.ParseCheckInQR("https://studio.test/check-in?booking=bk-123")
	require.NoError(t, err)
	assert.Equal(t, "bk-123", id)

	tests := []struct {
		name string
		data string
	}{
		{"other site", "https://elsewhere.test/check-in?booking=bk-123"},
		{"no booking", "https://studio.test/check-in?ref=bk-123"},
		{"plain text", "bk-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseCheckInQR(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestQRCodeService_CheckInURLRoundTrip(t *testing.T) {
	svc := NewQRCodeService(256, "M", "").(*qrcodeService)

	id, err := svc.ParseCheckInQR(svc.checkInURL("booking with spaces"))
	require.NoError(t, err)
	assert.Equal(t, "booking with spaces", id)
}
