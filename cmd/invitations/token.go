package main

import (
	"fmt"

	"github.com/jonathan/invitation-letters/internal/config"
	"github.com/jonathan/invitation-letters/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <operator>",
	Short: "Issue an API bearer token for an operator",
	Long:  `Sign a token with JWT_SECRET, valid for JWT_EXPIRATION_HOURS (default 24).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, args []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(args[0])
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
