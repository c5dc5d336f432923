package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/invitation-letters/internal/config"
	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/jonathan/invitation-letters/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server for editing the invited list, previewing groups and generating
letters. Set JWT_SECRET to require bearer tokens (see "invitations token").`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config; default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jwtConfig, err := config.OptionalJWTConfig()
	if err != nil {
		return err
	}
	if jwtConfig == nil {
		logger.Warn("JWT_SECRET not set, the API is unauthenticated")
	}

	generator, err := newGenerator()
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(server.Config{Port: port, JWT: jwtConfig}, server.Deps{
		Roster:    roster.NewService(st),
		Generator: generator,
		Runs:      st,
		Logger:    logger,
	})
	return srv.Start(ctx)
}
