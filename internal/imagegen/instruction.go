package imagegen

import (
	"fmt"
	"strings"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

const (
	taskEdit             = "Edit this image based on the instruction while maintaining the subject's likeness."
	taskReferenceStyle   = "Use the style or content from the second image and apply it to the first image. Preserve the subject's identity."
	taskReferenceClothes = "Dress the subject of the first image in the clothing shown in the second image. Preserve the subject's identity, face and body shape."
	taskClothes          = "Change only the subject's clothing. Keep the face, pose and background unchanged."
)

// Compose orders the content for one remote call: the source image, the
// optional reference image, then a single text segment with the instruction.
func Compose(source Image, reference *Image, instruction string, mode Mode) []Segment {
	segments := make([]Segment, 0, 3)
	src := source
	segments = append(segments, Segment{Image: &src})
	if reference != nil {
		ref := *reference
		segments = append(segments, Segment{Image: &ref})
	}
	segments = append(segments, Segment{Text: framedInstruction(instruction, mode, reference != nil)})
	return segments
}

func framedInstruction(instruction string, mode Mode, hasReference bool) string {
	task := taskEdit
	switch {
	case hasReference && mode == ModeClothes:
		task = taskReferenceClothes
	case hasReference:
		task = taskReferenceStyle
	case mode == ModeClothes:
		task = taskClothes
	}
	instruction = strings.TrimRight(strings.TrimSpace(instruction), ".")
	return fmt.Sprintf("INSTRUCTION: %s. TASK: %s", instruction, task)
}

// ClothingPreset is one entry of the clothing menu.
type ClothingPreset struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

// ClothingPresets are the predefined outfits, in menu order.
var ClothingPresets = []ClothingPreset{
	{ID: "suit", Label: "Setelan Jas Formal", Prompt: "ganti pakaian menjadi setelan jas formal hitam yang rapi dan mewah"},
	{ID: "batik", Label: "Kemeja Batik", Prompt: "ganti pakaian menjadi kemeja batik Indonesia modern dengan motif yang elegan"},
	{ID: "casual", Label: "Kaos & Jaket", Prompt: "ganti pakaian menjadi kaos putih dan jaket denim casual modern"},
	{ID: "traditional", Label: "Baju Adat", Prompt: "ganti pakaian menjadi baju adat tradisional Indonesia yang megah"},
	{ID: "sport", Label: "Pakaian Olahraga", Prompt: "ganti pakaian menjadi setelan jersey olahraga profesional yang stylish"},
	{ID: "doctor", Label: "Jas Dokter", Prompt: "ganti pakaian menjadi jas putih dokter yang bersih dan profesional"},
}

// LookupClothingPreset finds a preset by id.
func LookupClothingPreset(id string) (ClothingPreset, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range ClothingPresets {
		if p.ID == id {
			return p, true
		}
	}
	return ClothingPreset{}, false
}

// ClothingInstruction builds the instruction sent for a clothing swap. With a
// reference image the preset is ignored and the outfit is copied from it.
func ClothingInstruction(presetID, detail string, hasReference bool) (string, error) {
	parts := make([]string, 0, 3)
	if hasReference {
		parts = append(parts, "Ganti pakaian subjek agar persis seperti pakaian dalam gambar referensi kedua.")
	} else {
		preset, ok := LookupClothingPreset(presetID)
		if !ok {
			return "", fmt.Errorf("%w: %q", domain.ErrUnknownPreset, presetID)
		}
		parts = append(parts, preset.Prompt+".")
	}
	if detail = strings.TrimSpace(detail); detail != "" {
		parts = append(parts, "Gunakan detail tambahan: "+detail+".")
	}
	if hasReference {
		parts = append(parts, "Pertahankan bentuk tubuh dan wajah subjek asli.")
	} else {
		parts = append(parts, "Pastikan wajah dan latar belakang tetap asli.")
	}
	return strings.Join(parts, " "), nil
}
