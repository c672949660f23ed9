// Package qrcode renders the QR codes the front-end shows for wallet
// pairing and payment requests.
package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/Emrys-Org/loyalmint/pkg/ledger"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrInvalidAddress is returned when the wallet address is not a valid chain address
	ErrInvalidAddress = errors.New("invalid wallet address")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

// defaultSize is the size in pixels used when no size is specified
const defaultSize = 256

// ConnectURI builds the algorand payment/pairing URI a wallet app opens when
// scanning the QR code. Amount is in microAlgos; zero omits the parameter.
func ConnectURI(address string, amount uint64, label string) (string, error) {
	if !ledger.IsValidAddress(address) {
		return "", ErrInvalidAddress
	}

	uri := "algorand://" + address
	params := url.Values{}
	if amount > 0 {
		params.Set("amount", fmt.Sprintf("%d", amount))
	}
	if label != "" {
		params.Set("label", label)
	}
	if encoded := params.Encode(); encoded != "" {
		uri += "?" + encoded
	}
	return uri, nil
}

// Generate creates a QR code image in PNG format with the given content.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// GenerateBase64Image creates a data-URI encoded QR code image, ready to be
// used as an <img> source in the front-end.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
