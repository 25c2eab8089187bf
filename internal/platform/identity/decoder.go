package identity

import (
	"encoding/base64"
	"fmt"

	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
)

// Supported owner encodings.
const (
	EncodingBase64 = "base64"
	EncodingRaw    = "raw"
)

// Base64Decoder decodes standard base64, the encoding clients use for
// certificates and public keys.
type Base64Decoder struct{}

func (Base64Decoder) Decode(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RawDecoder passes identifiers through unchanged.
type RawDecoder struct{}

func (RawDecoder) Decode(encoded string) (string, error) {
	return encoded, nil
}

// NewDecoder returns the decoder for the named encoding.
func NewDecoder(encoding string) (portssvc.IdentifierDecoder, error) {
	switch encoding {
	case EncodingBase64:
		return Base64Decoder{}, nil
	case EncodingRaw:
		return RawDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown owner encoding %q", encoding)
	}
}
