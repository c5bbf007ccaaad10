package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"realz/internal/config"
	"realz/internal/domain"
	"realz/internal/infra/verifyclient"
	"realz/internal/logging"
	"realz/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type verifyOptions struct {
	endpoint string
	asJSON   bool
	verbose  bool
}

func newVerifyCmd() *cobra.Command {
	opts := &verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify <url-or-path>",
		Short: "Render the verification verdict for a /v/{id} link",
		Long: `verify resolves the proof id from a Realz link (a full URL, a /v/{id}
path, or a /?p=/v/{id} redirect URL), asks the verification endpoint about
it once, and prints what the verification page would show.

Exit status is 0 when the proof is verified and 1 for any other verdict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "verification endpoint URL (overrides VERIFY_ENDPOINT_URL)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the view model as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	return cmd
}

func runVerify(cmd *cobra.Command, opts *verifyOptions, link string) error {
	cfg, err := config.Load()
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if opts.endpoint != "" {
		cfg.EndpointURL = strings.TrimSpace(opts.endpoint)
	}
	if err := cfg.Validate(); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	loc, err := cfg.Location()
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	location, err := usecase.ParseLocation(link)
	if err != nil {
		return &exitError{code: exitUsage, err: fmt.Errorf("parse link: %w", err)}
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	} else if level == "info" {
		level = "warn"
	}
	logger, err := logging.New(level)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	defer func() { _ = logger.Sync() }()

	client, err := verifyclient.New(cfg.EndpointURL,
		verifyclient.WithTimeout(cfg.VerifyTimeout),
		verifyclient.WithLogger(logger.Named("verifyclient")),
	)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	vm := usecase.NewViewModel()
	render := &usecase.RenderVerification{
		Verifier:        client,
		Logger:          logger.Named("render"),
		DisplayLocation: loc,
	}
	state := render.Execute(ctx, location, vm)
	logger.Debug("verification rendered", zap.String("state", state.String()))

	if opts.asJSON {
		err = writeJSON(cmd.OutOrStdout(), vm)
	} else {
		err = writeText(cmd.OutOrStdout(), vm)
	}
	if err != nil {
		return &exitError{code: exitUsage, err: fmt.Errorf("write output: %w", err)}
	}
	if state != domain.StateVerified {
		return &exitError{code: exitNotVerified}
	}
	return nil
}
