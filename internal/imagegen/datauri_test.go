package imagegen

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

func TestParseImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(jpegBytes)
	cases := []struct {
		name string
		in   string
		mime string
	}{
		{name: "data uri", in: "data:image/jpeg;base64," + payload, mime: "image/jpeg"},
		{name: "bare payload", in: payload, mime: "image/png"},
		{name: "unpadded", in: base64.RawStdEncoding.EncodeToString(jpegBytes), mime: "image/png"},
		{name: "wrapped lines", in: "data:IMAGE/WEBP;base64," + payload[:4] + "\n" + payload[4:], mime: "image/webp"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img, err := ParseImage(tc.in)
			if err != nil {
				t.Fatalf("ParseImage error: %v", err)
			}
			if img.MIMEType != tc.mime || !bytes.Equal(img.Data, jpegBytes) {
				t.Fatalf("got %q %v", img.MIMEType, img.Data)
			}
		})
	}
}

func TestParseImageErrors(t *testing.T) {
	if _, err := ParseImage("   "); !errors.Is(err, domain.ErrSourceImageRequired) {
		t.Fatalf("blank: %v", err)
	}
	if _, err := ParseImage("data:image/png;base64,"); !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("empty payload: %v", err)
	}
	if _, err := ParseImage("not base64 at all!"); !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("garbage: %v", err)
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	img := Image{MIMEType: "image/jpeg", Data: jpegBytes}
	back, err := ParseImage(img.DataURI())
	if err != nil {
		t.Fatalf("ParseImage error: %v", err)
	}
	if back.MIMEType != "image/jpeg" || !bytes.Equal(back.Data, jpegBytes) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
