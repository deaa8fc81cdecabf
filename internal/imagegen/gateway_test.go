package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

type stubRemote struct {
	calls []RemoteRequest
	resp  *RemoteResponse
	err   error
}

func (s *stubRemote) GenerateContent(ctx context.Context, req RemoteRequest) (*RemoteResponse, error) {
	s.calls = append(s.calls, req)
	return s.resp, s.err
}

var (
	pngBytes  = []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	jpegBytes = []byte{0xff, 0xd8, 0xff, 4, 5}
)

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestEditComposesSourceThenText(t *testing.T) {
	remote := &stubRemote{resp: &RemoteResponse{Segments: []Segment{{Image: &Image{MIMEType: "image/png", Data: pngBytes}}}}}
	gw := NewGateway(remote, zerolog.Nop())

	_, err := gw.Edit(context.Background(), EditRequest{
		SourceImage: dataURI("image/jpeg", jpegBytes),
		Instruction: "  make it sunny  ",
		AspectRatio: "16:9",
	})
	if err != nil {
		t.Fatalf("Edit error: %v", err)
	}
	if len(remote.calls) != 1 {
		t.Fatalf("remote calls = %d, want 1", len(remote.calls))
	}
	call := remote.calls[0]
	if call.AspectRatio != AspectWide {
		t.Fatalf("aspect ratio = %q", call.AspectRatio)
	}
	if len(call.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(call.Segments))
	}
	if call.Segments[0].Image == nil || call.Segments[0].Image.MIMEType != "image/jpeg" {
		t.Fatalf("first segment should be the jpeg source: %+v", call.Segments[0])
	}
	last := call.Segments[1]
	if last.Image != nil {
		t.Fatal("last segment must be text")
	}
	want := "INSTRUCTION: make it sunny. TASK: " + taskEdit
	if last.Text != want {
		t.Fatalf("text = %q, want %q", last.Text, want)
	}
}

func TestEditWithReferenceOrdersSegments(t *testing.T) {
	remote := &stubRemote{resp: &RemoteResponse{Segments: []Segment{{Image: &Image{Data: pngBytes}}}}}
	gw := NewGateway(remote, zerolog.Nop())

	_, err := gw.Edit(context.Background(), EditRequest{
		Mode:           ModeReference,
		SourceImage:    base64.StdEncoding.EncodeToString(pngBytes),
		ReferenceImage: dataURI("image/webp", jpegBytes),
		Instruction:    "copy the lighting",
	})
	if err != nil {
		t.Fatalf("Edit error: %v", err)
	}
	segs := remote.calls[0].Segments
	if len(segs) != 3 {
		t.Fatalf("segments = %d, want 3", len(segs))
	}
	if segs[0].Image.MIMEType != "image/png" || segs[1].Image.MIMEType != "image/webp" {
		t.Fatalf("unexpected image order: %q, %q", segs[0].Image.MIMEType, segs[1].Image.MIMEType)
	}
	if !strings.HasSuffix(segs[2].Text, taskReferenceStyle) {
		t.Fatalf("reference framing missing: %q", segs[2].Text)
	}
	if remote.calls[0].AspectRatio != AspectSquare {
		t.Fatalf("default aspect ratio = %q", remote.calls[0].AspectRatio)
	}
}

func TestEditRejectsInputBeforeRemoteCall(t *testing.T) {
	valid := dataURI("image/png", pngBytes)
	cases := []struct {
		name string
		req  EditRequest
		want error
	}{
		{name: "missing source", req: EditRequest{Instruction: "x"}, want: domain.ErrSourceImageRequired},
		{name: "blank instruction", req: EditRequest{SourceImage: valid, Instruction: "  "}, want: domain.ErrInstructionRequired},
		{name: "bad ratio", req: EditRequest{SourceImage: valid, Instruction: "x", AspectRatio: "2:1"}, want: domain.ErrInvalidAspectRatio},
		{name: "bad payload", req: EditRequest{SourceImage: "data:image/png;base64,@@@", Instruction: "x"}, want: domain.ErrInvalidImage},
		{name: "bad reference", req: EditRequest{SourceImage: valid, ReferenceImage: "%%%", Instruction: "x"}, want: domain.ErrInvalidImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			remote := &stubRemote{}
			gw := NewGateway(remote, zerolog.Nop())
			_, err := gw.Edit(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if len(remote.calls) != 0 {
				t.Fatalf("remote called %d times", len(remote.calls))
			}
		})
	}
}

func TestEditPicksFirstImageAndConcatenatesText(t *testing.T) {
	remote := &stubRemote{resp: &RemoteResponse{Segments: []Segment{
		{Text: "Here you go. "},
		{Image: &Image{MIMEType: "image/jpeg", Data: jpegBytes}},
		{Image: &Image{MIMEType: "image/png", Data: pngBytes}},
		{Text: "Enjoy!"},
	}}}
	gw := NewGateway(remote, zerolog.Nop())

	res, err := gw.Edit(context.Background(), EditRequest{SourceImage: dataURI("image/png", pngBytes), Instruction: "x"})
	if err != nil {
		t.Fatalf("Edit error: %v", err)
	}
	if res.ImageURL != "data:image/png;base64,"+base64.StdEncoding.EncodeToString(jpegBytes) {
		t.Fatalf("ImageURL = %q", res.ImageURL)
	}
	if res.Text != "Here you go. Enjoy!" {
		t.Fatalf("Text = %q", res.Text)
	}
	if res.Image.MIMEType != "image/jpeg" {
		t.Fatalf("Image.MIMEType = %q", res.Image.MIMEType)
	}
}

func TestEditNoImageProduced(t *testing.T) {
	cases := []struct {
		name   string
		resp   *RemoteResponse
		detail string
	}{
		{name: "text only", resp: &RemoteResponse{Segments: []Segment{{Text: "I can't help with that."}}}, detail: "I can't help with that."},
		{name: "empty", resp: &RemoteResponse{}, detail: NoImageDetail},
		{name: "nil", resp: nil, detail: NoImageDetail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := NewGateway(&stubRemote{resp: tc.resp}, zerolog.Nop())
			_, err := gw.Edit(context.Background(), EditRequest{SourceImage: dataURI("image/png", pngBytes), Instruction: "x"})
			var editErr *EditError
			if !errors.As(err, &editErr) {
				t.Fatalf("expected *EditError, got %v", err)
			}
			if editErr.Kind != KindNoImageProduced || editErr.Detail != tc.detail {
				t.Fatalf("got %s / %q", editErr.Kind, editErr.Detail)
			}
		})
	}
}

func TestEditClassifiesRemoteFailure(t *testing.T) {
	gw := NewGateway(&stubRemote{err: &RemoteError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}}, zerolog.Nop())
	_, err := gw.Edit(context.Background(), EditRequest{SourceImage: dataURI("image/png", pngBytes), Instruction: "x"})
	if KindOf(err) != KindQuotaOrBillingExhausted {
		t.Fatalf("kind = %q, err = %v", KindOf(err), err)
	}
}
