package qrcode

import (
	"net/url"
	"strings"

	"studio/config"
	"studio/internal/domain/service"
	"studio/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	bookingParam   = "booking"
	defaultBaseURL = "studio://check-in"
	defaultSize    = 256
)

type qrcodeService struct {
	size    int
	level   qrcode.RecoveryLevel
	baseURL string
}

// NewQRCodeService builds check-in codes of the form baseURL?booking=<id>.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &qrcodeService{size: size, level: level, baseURL: baseURL}
}

func (s *qrcodeService) checkInURL(bookingID string) string {
	return s.baseURL + "?" + url.Values{bookingParam: {bookingID}}.Encode()
}

// GenerateCheckInQR renders the check-in link for a booking as PNG.
func (s *qrcodeService) GenerateCheckInQR(bookingID string) ([]byte, error) {
	if bookingID == "" {
		return nil, errors.New("booking id is required")
	}

	code, err := qrcode.New(s.checkInURL(bookingID), s.level)
	if err != nil {
		return nil, errors.Wrap(err, "create QR code")
	}

	png, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "render QR code")
	}

	return png, nil
}

func (s *qrcodeService) ParseCheckInQR(qrData string) (string, error) {
	if !strings.HasPrefix(qrData, s.baseURL+"?") {
		return "", errors.Errorf("not a check-in code: %q", qrData)
	}

	u, err := url.Parse(qrData)
	if err != nil {
		return "", errors.Wrap(err, "parse check-in code")
	}

	bookingID := u.Query().Get(bookingParam)
	if bookingID == "" {
		return "", errors.New("check-in code has no booking id")
	}

	return bookingID, nil
}

func New(cfg *config.Config) service.QRCodeService {
	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}
