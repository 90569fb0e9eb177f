package service

import "github.com/google/uuid"

const qrCodeBaseURL = "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data="

// QRCodeService produces login QR payloads for the auth page.
type QRCodeService struct{}

// NewQRCodeService constructs the service.
func NewQRCodeService() *QRCodeService {
	return &QRCodeService{}
}

// GenerateLoginCode returns a QR image URL wrapping a fresh login token.
func (s *QRCodeService) GenerateLoginCode() (token, imageURL string) {
	token = "mosquito-alert-login-" + uuid.NewString()
	return token, qrCodeBaseURL + token
}
