package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/bootstrap"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/imagegen"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/storage"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/studio"
)

// edit runs one image edit from the command line against the same quota
// store and Gemini key the API uses, and writes the result under -out.
func main() {
	_ = godotenv.Load()

	var (
		inFlag       string
		refFlag      string
		promptFlag   string
		modeFlag     string
		clothingFlag string
		detailFlag   string
		ratioFlag    string
		identityFlag string
		localeFlag   string
		outFlag      string
		timeoutFlag  time.Duration
	)
	flag.StringVar(&inFlag, "in", "", "source image path")
	flag.StringVar(&refFlag, "ref", "", "optional reference image path")
	flag.StringVar(&promptFlag, "prompt", "", "edit instruction")
	flag.StringVar(&modeFlag, "mode", string(imagegen.ModeGeneral), "general, clothes or reference")
	flag.StringVar(&clothingFlag, "clothing", "", "clothing preset id for clothes mode")
	flag.StringVar(&detailFlag, "detail", "", "extra clothing detail")
	flag.StringVar(&ratioFlag, "ratio", string(imagegen.AspectSquare), "output aspect ratio")
	flag.StringVar(&identityFlag, "identity", "", "quota identity (email); empty uses the anonymous bucket")
	flag.StringVar(&localeFlag, "locale", "id", "message language (id or en)")
	flag.StringVar(&outFlag, "out", "output", "directory for edited images")
	flag.DurationVar(&timeoutFlag, "timeout", 3*time.Minute, "overall timeout")
	flag.Parse()

	if strings.TrimSpace(inFlag) == "" {
		exitWithError(errors.New("-in is required"))
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}
	logger := infra.NewLogger("cli", cfg.LogLevel).With().Str("cmd", "edit").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	svc, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		exitWithError(err)
	}
	defer svc.Close()

	files, err := storage.NewFileStore(outFlag)
	if err != nil {
		exitWithError(err)
	}

	source, err := readDataURI(inFlag)
	if err != nil {
		exitWithError(err)
	}
	var reference string
	if strings.TrimSpace(refFlag) != "" {
		if reference, err = readDataURI(refFlag); err != nil {
			exitWithError(err)
		}
	}

	req := studio.Request{
		Mode:           imagegen.NormalizeMode(modeFlag),
		SourceImage:    source,
		ReferenceImage: reference,
		Instruction:    promptFlag,
		AspectRatio:    ratioFlag,
	}
	if clothingFlag != "" || detailFlag != "" {
		req.Clothing = &studio.ClothingChoice{Preset: clothingFlag, Detail: detailFlag}
	}

	sess := studio.Session{Identity: domain.NewIdentity(identityFlag), Locale: localeFlag}
	out, err := svc.Studio.Edit(ctx, sess, req)
	if err != nil {
		logger.Debug().Err(err).Msg("edit failed")
		exitWithError(errors.New(studio.Message(err, sess.Locale)))
	}

	key, err := files.SaveImage(ctx, string(req.Mode), out.Result.Image.MIMEType, out.Result.Image.Data)
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("saved %s\n", files.Path(key))
	if out.Result.Text != "" {
		fmt.Printf("model: %s\n", out.Result.Text)
	}
	fmt.Printf("remaining quota: %d/%d\n", out.Remaining, svc.Quota.Max())
}

func readDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "edit: %v\n", err)
	os.Exit(1)
}
