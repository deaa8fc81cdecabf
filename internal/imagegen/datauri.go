package imagegen

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

const defaultMIMEType = "image/png"

// ParseImage decodes a data URI such as "data:image/jpeg;base64,..." or a bare
// base64 payload, which is assumed to be PNG.
func ParseImage(encoded string) (Image, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return Image{}, domain.ErrSourceImageRequired
	}

	mime := defaultMIMEType
	payload := encoded
	if head, body, ok := strings.Cut(encoded, ";base64,"); ok {
		payload = body
		if tag := strings.TrimSpace(strings.TrimPrefix(head, "data:")); tag != "" {
			mime = strings.ToLower(tag)
		}
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty payload", domain.ErrInvalidImage)
	}
	return Image{MIMEType: mime, Data: data}, nil
}

// DataURI renders img as a base64 data URI with its own MIME type.
func (img Image) DataURI() string {
	mime := img.MIMEType
	if mime == "" {
		mime = defaultMIMEType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// pngDataURI tags any returned image as PNG, which is what clients expect.
func pngDataURI(data []byte) string {
	return Image{MIMEType: defaultMIMEType, Data: data}.DataURI()
}

func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, payload)
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
}
