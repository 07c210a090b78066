// Package main implements copyforge, a command-line client that generates
// and refines copy through the same fallback gateway the API server uses.
//
// Usage:
//
//	copyforge generate -topic "spring sale" -platform Instagram -tone playful
//	copyforge refine -instruction "make it shorter" < draft.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/copyforge-api/internal/api"
	"github.com/phrazzld/copyforge-api/internal/api/shared"
	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/phrazzld/copyforge-api/internal/platform/gemini"
	"github.com/phrazzld/copyforge-api/internal/platform/logger"
	"github.com/phrazzld/copyforge-api/internal/service"
)

const usage = `usage: copyforge <command> [flags]

commands:
  generate  -topic T -platform P -tone T
  refine    -instruction I [-content C]   (content is read from stdin when omitted)
`

// errUsage marks invocation mistakes that should print the usage text.
var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(cli(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// cli wires configuration into a content service and dispatches args.
func cli(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	llm, err := config.LoadLLM()
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: cliLogLevel()}, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "logger error: %v\n", err)
		return 1
	}

	gateway, err := gemini.NewGateway(*llm, log)
	if err != nil {
		fmt.Fprintf(stderr, "gateway error: %v\n", err)
		return 1
	}

	content, err := service.NewContentService(gateway, llm.GeminiAPIKey, log)
	if err != nil {
		fmt.Fprintf(stderr, "service error: %v\n", err)
		return 1
	}

	return run(ctx, args, content, stdin, stdout, stderr)
}

func cliLogLevel() string {
	if lvl := os.Getenv("COPYFORGE_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "warn"
}

// run executes one command against svc. Generated text goes to stdout;
// failures are reported on stderr as "<status>: <message>".
func run(
	ctx context.Context,
	args []string,
	svc service.ContentService,
	stdin io.Reader,
	stdout, stderr io.Writer,
) int {
	text, err := dispatch(ctx, args, svc, stdin, stderr)
	if errors.Is(err, errUsage) {
		fmt.Fprint(stderr, usage)
		return 2
	}
	if err != nil {
		code := api.MapErrorToStatusCode(err)
		fmt.Fprintf(stderr, "%s: %s\n", shared.StatusName(code), api.GetSafeErrorMessage(err))
		return 1
	}

	fmt.Fprintln(stdout, text)
	return 0
}

func dispatch(
	ctx context.Context,
	args []string,
	svc service.ContentService,
	stdin io.Reader,
	stderr io.Writer,
) (string, error) {
	if len(args) == 0 {
		return "", errUsage
	}

	switch args[0] {
	case "generate":
		fs := flag.NewFlagSet("generate", flag.ContinueOnError)
		fs.SetOutput(stderr)
		topic := fs.String("topic", "", "subject of the copy")
		platform := fs.String("platform", "", "target platform, e.g. Instagram")
		tone := fs.String("tone", "", "tone of voice")
		if err := fs.Parse(args[1:]); err != nil {
			return "", errUsage
		}
		return svc.GenerateContent(ctx, *topic, *platform, *tone)

	case "refine":
		fs := flag.NewFlagSet("refine", flag.ContinueOnError)
		fs.SetOutput(stderr)
		content := fs.String("content", "", "text to refine (stdin when empty)")
		instruction := fs.String("instruction", "", "how to change the text")
		if err := fs.Parse(args[1:]); err != nil {
			return "", errUsage
		}
		text := *content
		if text == "" && stdin != nil {
			raw, err := io.ReadAll(io.LimitReader(stdin, shared.MaxRequestBodyBytes))
			if err != nil {
				return "", fmt.Errorf("reading content from stdin: %w", err)
			}
			text = strings.TrimRight(string(raw), "\n")
		}
		return svc.RefineContent(ctx, text, *instruction)

	default:
		return "", errUsage
	}
}
