package utils

import "github.com/skip2/go-qrcode"

// QRCode renders content as a PNG QR code of Size pixels at the given recovery level.
type QRCode struct {
	Size       int
	Level      qrcode.RecoveryLevel
	Borderless bool
}

func (q QRCode) PNG(content string) ([]byte, error) {
	code, err := qrcode.New(content, q.Level)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = q.Borderless
	return code.PNG(q.Size)
}
