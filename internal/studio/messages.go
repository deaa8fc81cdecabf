package studio

import (
	"errors"
	"strings"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/imagegen"
)

type message struct {
	id string
	en string
}

func (m message) in(locale string) string {
	if locale == "id" {
		return m.id
	}
	return m.en
}

var (
	msgQuotaExhausted = message{
		id: "Kuota harian aplikasi Anda telah habis. Silakan coba lagi besok.",
		en: "Your daily edit quota is used up. Please try again tomorrow.",
	}
	msgSourceRequired = message{
		id: "Silakan unggah gambar terlebih dahulu.",
		en: "Please upload an image first.",
	}
	msgInstructionRequired = message{
		id: "Silakan masukkan instruksi edit.",
		en: "Please enter an edit instruction.",
	}
	msgInvalidImage = message{
		id: "Gambar tidak dapat dibaca. Silakan unggah ulang.",
		en: "The image could not be read. Please upload it again.",
	}
	msgInvalidAspectRatio = message{
		id: "Rasio aspek tidak didukung.",
		en: "Unsupported aspect ratio.",
	}
	msgUnknownPreset = message{
		id: "Gaya pakaian tidak dikenal.",
		en: "Unknown clothing style.",
	}
	msgUnauthorized = message{
		id: "Sesi tidak valid. Silakan masuk kembali.",
		en: "Your session is no longer valid. Please sign in again.",
	}
	msgProviderQuota = message{
		id: "Kuota API Google (Free Tier) telah habis atau terbatas. Disarankan menggunakan API Key dari Project Google Cloud yang memiliki Penagihan (Paid Project). Silakan buka Pengaturan untuk memperbarui kunci.",
		en: "The Google API quota (free tier) is exhausted or limited. Use an API key from a Google Cloud project with billing enabled and update it in Settings.",
	}
	msgProviderAuth = message{
		id: "Koneksi API bermasalah. Silakan pilih kembali Kunci API Anda di menu Pengaturan.",
		en: "There is a problem with the API connection. Please select your API key again in Settings.",
	}
	msgNoImage = message{
		id: "AI tidak menghasilkan gambar. Hal ini mungkin disebabkan oleh filter keamanan (Safety Filter).",
		en: "The AI did not produce an image. This may be caused by the safety filter.",
	}
	msgFailure = message{
		id: "Terjadi kegagalan sistem. Coba beberapa saat lagi.",
		en: "A system failure occurred. Please try again shortly.",
	}
)

// Message returns the user-facing text for err in locale ("id" or "en").
func Message(err error, locale string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrQuotaExhausted):
		return msgQuotaExhausted.in(locale)
	case errors.Is(err, domain.ErrSourceImageRequired):
		return msgSourceRequired.in(locale)
	case errors.Is(err, domain.ErrInstructionRequired):
		return msgInstructionRequired.in(locale)
	case errors.Is(err, domain.ErrInvalidImage):
		return msgInvalidImage.in(locale)
	case errors.Is(err, domain.ErrInvalidAspectRatio):
		return msgInvalidAspectRatio.in(locale)
	case errors.Is(err, domain.ErrUnknownPreset):
		return msgUnknownPreset.in(locale)
	case errors.Is(err, domain.ErrUnauthorized):
		return msgUnauthorized.in(locale)
	}

	var editErr *imagegen.EditError
	if !errors.As(err, &editErr) {
		return msgFailure.in(locale)
	}
	switch editErr.Kind {
	case imagegen.KindQuotaOrBillingExhausted:
		return msgProviderQuota.in(locale)
	case imagegen.KindAuthenticationInvalid:
		return msgProviderAuth.in(locale)
	case imagegen.KindNoImageProduced:
		if editErr.Detail != "" && editErr.Detail != imagegen.NoImageDetail {
			return "AI Responded: " + editErr.Detail
		}
		return msgNoImage.in(locale)
	default:
		if detail := strings.TrimSpace(editErr.Detail); detail != "" {
			return detail
		}
		return msgFailure.in(locale)
	}
}
