package service

// QRCodeService encodes booking references for check-in at the session.
type QRCodeService interface {
	GenerateCheckInQR(bookingID string) ([]byte, error)

	// ParseCheckInQR returns the booking id carried by a scanned code.
	ParseCheckInQR(qrData string) (string, error)
}
