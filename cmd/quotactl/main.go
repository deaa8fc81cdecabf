package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/bootstrap"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra"
)

// quotactl shows or resets the daily allowance of one identity in the
// configured store.
func main() {
	_ = godotenv.Load()

	var (
		emailFlag string
		anonFlag  bool
		resetFlag bool
	)
	flag.StringVar(&emailFlag, "email", "", "identity to inspect")
	flag.BoolVar(&anonFlag, "anonymous", false, "target the shared anonymous bucket")
	flag.BoolVar(&resetFlag, "reset", false, "restore the full daily allowance")
	flag.Parse()

	email := strings.TrimSpace(emailFlag)
	if email == "" && !anonFlag {
		exitWithError(errors.New("either -email or -anonymous must be provided"))
	}
	if email != "" && anonFlag {
		exitWithError(errors.New("-email and -anonymous are mutually exclusive"))
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}
	logger := infra.NewLogger("cli", cfg.LogLevel).With().Str("cmd", "quotactl").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	svc, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		exitWithError(err)
	}
	defer svc.Close()

	id := domain.NewIdentity(email)
	remaining := svc.Quota.Initialize(ctx, id)
	if resetFlag {
		remaining = svc.Quota.Reset(ctx, id)
	}

	out := map[string]any{
		"identity":  id.Key(),
		"remaining": remaining,
		"max":       svc.Quota.Max(),
		"store":     cfg.Store.Driver,
		"reset":     resetFlag,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "quotactl: %v\n", err)
	os.Exit(1)
}
