package studio

import (
	"fmt"
	"testing"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/imagegen"
)

func TestMessage(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		locale string
		want   string
	}{
		{name: "quota id", err: domain.ErrQuotaExhausted, locale: "id", want: msgQuotaExhausted.id},
		{name: "quota en", err: domain.ErrQuotaExhausted, locale: "en", want: msgQuotaExhausted.en},
		{name: "instruction", err: fmt.Errorf("wrap: %w", domain.ErrInstructionRequired), locale: "id", want: "Silakan masukkan instruksi edit."},
		{name: "source", err: domain.ErrSourceImageRequired, locale: "id", want: "Silakan unggah gambar terlebih dahulu."},
		{name: "provider quota", err: &imagegen.EditError{Kind: imagegen.KindQuotaOrBillingExhausted}, locale: "id", want: msgProviderQuota.id},
		{name: "provider auth", err: &imagegen.EditError{Kind: imagegen.KindAuthenticationInvalid}, locale: "en", want: msgProviderAuth.en},
		{name: "model text", err: &imagegen.EditError{Kind: imagegen.KindNoImageProduced, Detail: "I cannot edit this."}, locale: "id", want: "AI Responded: I cannot edit this."},
		{name: "safety", err: &imagegen.EditError{Kind: imagegen.KindNoImageProduced, Detail: imagegen.NoImageDetail}, locale: "id", want: msgNoImage.id},
		{name: "unclassified keeps detail", err: imagegen.Classify(&imagegen.RemoteError{Code: 500, Status: "INTERNAL", Message: "model overloaded"}), locale: "en", want: "remote error 500 INTERNAL: model overloaded"},
		{name: "unclassified without detail", err: &imagegen.EditError{Kind: imagegen.KindUnclassified}, locale: "fr", want: msgFailure.en},
		{name: "unknown", err: fmt.Errorf("boom"), locale: "id", want: msgFailure.id},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.err, tc.locale); got != tc.want {
				t.Fatalf("Message() = %q, want %q", got, tc.want)
			}
		})
	}
	if Message(nil, "id") != "" {
		t.Fatal("Message(nil) should be empty")
	}
}
