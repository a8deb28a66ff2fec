// seed loads brands, units, salesmen and other masters plus ledgers into a
// running API through the desk pages.
//
// Usage: go run ./cmd/seed [-charset latin1] seed.json
// The API URL and credentials come from DESK_API_URL, ADMIN_USERNAME and ADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/session"
	"github.com/rsankarapandian/stores-backoffice/pkg/config"
	"github.com/rsankarapandian/stores-backoffice/pkg/logger"
)

func main() {
	charset := flag.String("charset", "utf-8", "input encoding: utf-8, latin1 or windows-1252")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: seed [-charset latin1] seed.json")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	in, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("open seed file")
	}
	f, err := Decode(in, *charset)
	in.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := apiclient.New(cfg.Desk.APIURL, nil, cfg.Desk.Timeout, log.Component("apiclient"))
	auth := session.NewAPIProvider(client, log.Zerolog())
	if err := auth.Login(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Str("api", cfg.Desk.APIURL).Msg("login")
	}
	defer auth.Logout()

	s := &Seeder{client: client, log: log.Component("seed")}
	res, err := s.Run(ctx, f)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Int("failed", res.Failed).Msg("seed finished")
}
