// Command token-generator issues a development access token for a user ID,
// signed with the configured COPYFORGE_AUTH_JWT_SECRET.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/phrazzld/copyforge-api/internal/service/auth"
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	userFlag := fs.String("user", "", "user ID to embed in the token (random when empty)")
	lifetime := fs.Duration("lifetime", time.Duration(config.DefaultTokenLifetimeMinutes)*time.Minute, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			fmt.Fprintf(stderr, "invalid user ID %q: %v\n", *userFlag, err)
			return 2
		}
		userID = parsed
	}

	minutes := int(lifetime.Minutes())
	if minutes < 1 {
		minutes = 1
	}

	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            getenv(config.EnvPrefix + "_AUTH_JWT_SECRET"),
		TokenLifetimeMinutes: minutes,
	})
	if err != nil {
		fmt.Fprintf(stderr, "cannot create JWT service: %v\n", err)
		return 1
	}

	token, err := svc.GenerateToken(context.Background(), userID)
	if err != nil {
		fmt.Fprintf(stderr, "cannot generate token: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "User: %s\nToken: %s\n", userID, token)
	return 0
}
