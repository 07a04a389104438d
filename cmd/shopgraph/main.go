package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/hanpama/shopgraph/internal/auth"
	"github.com/hanpama/shopgraph/internal/config"
	"github.com/hanpama/shopgraph/internal/engine"
	"github.com/hanpama/shopgraph/internal/eventbus"
	"github.com/hanpama/shopgraph/internal/logging"
	"github.com/hanpama/shopgraph/internal/otel"
	"github.com/hanpama/shopgraph/internal/server"
	"github.com/hanpama/shopgraph/internal/store"
)

const rootUsage = `shopgraph — mock GraphQL-style commerce endpoint

USAGE:
  shopgraph <command> [flags]

COMMANDS:
  serve            Run the HTTP query endpoint over the seeded in-memory store
  mint-token       Mint an HS256 bearer token for a seed user
  help             Show help for any command
`

const serveUsage = `serve FLAGS:
  -config <file>              Optional YAML config file; env vars with the
                              SHOPGRAPH_ prefix override it
  -server.addr <addr>         HTTP listen address (default: :8080)
  -server.pretty              Pretty-print JSON responses
  -server.timeout <duration>  Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>    Max request body size (default: 1048576)
  -auth.secret <secret>       HS256 secret enabling JWT verification; when
                              empty the static dev tokens are used
                              (admin-token, alice-token, bob-token)
  -otel.endpoint <addr>       OTLP collector endpoint
  -otel.service <name>        OpenTelemetry service name (default: shopgraph)
`

const mintTokenUsage = `mint-token FLAGS:
  -auth.secret <secret>  HS256 signing secret (required)
  -user <id>             Seed user id (default: 1)
  -ttl <duration>        Token lifetime (default: 24h)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("shopgraph", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "mint-token":
		return cmdMintToken(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "mint-token":
		fmt.Print(mintTokenUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdServe(args []string) error {
	configPath := ""
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&configPath, "config", configPath, "YAML config file")
	addr := fs.String("server.addr", "", "HTTP listen address")
	pretty := fs.Bool("server.pretty", false, "Pretty-print JSON responses")
	timeout := fs.Duration("server.timeout", 0, "Per-request timeout")
	maxBody := fs.Int64("server.max-body", 0, "Max request body size")
	secret := fs.String("auth.secret", "", "HS256 signing secret")
	otelEndpoint := fs.String("otel.endpoint", "", "OTLP collector endpoint")
	otelService := fs.String("otel.service", "", "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// Flags given explicitly win over file and env.
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *pretty {
		cfg.Server.Pretty = true
	}
	if *timeout > 0 {
		cfg.Server.Timeout = *timeout
	}
	if *maxBody > 0 {
		cfg.Server.MaxBodyBytes = *maxBody
	}
	if *secret != "" {
		cfg.Auth.Secret = *secret
	}
	if *otelEndpoint != "" {
		cfg.Otel.Endpoint = *otelEndpoint
	}
	if *otelService != "" {
		cfg.Otel.Service = *otelService
	}

	st := store.Seed()
	var verifier auth.Verifier
	if cfg.Auth.Secret != "" {
		verifier = auth.NewJWTVerifier(st, []byte(cfg.Auth.Secret), cfg.Auth.Issuer)
	} else {
		verifier = auth.NewStaticVerifier(st, auth.DevTokens())
		log.Printf("auth: no secret configured, using static dev tokens")
	}

	eventbus.Use(eventbus.New())
	zlog, err := logging.New()
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = zlog.Sync() }()
	logging.Attach(zlog)

	shutdown, err := otel.Setup(cfg.Otel.Endpoint, cfg.Otel.Service)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	eng := engine.New(st, verifier)
	var sopts []server.Option
	if cfg.Server.Pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if cfg.Server.Timeout > 0 {
		sopts = append(sopts, server.WithTimeout(cfg.Server.Timeout))
	}
	if cfg.Server.MaxBodyBytes > 0 {
		sopts = append(sopts, server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))
	}
	h := server.New(eng, sopts...)

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	log.Printf("query endpoint listening on %s", cfg.Server.Addr)
	return http.ListenAndServe(cfg.Server.Addr, mux)
}

func cmdMintToken(args []string) error {
	secret := ""
	userID := 1
	ttl := auth.DefaultTokenTTL
	fs := flag.NewFlagSet("mint-token", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&secret, "auth.secret", secret, "HS256 signing secret")
	fs.IntVar(&userID, "user", userID, "Seed user id")
	fs.DurationVar(&ttl, "ttl", ttl, "Token lifetime")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, mintTokenUsage)
		return err
	}
	if secret == "" {
		fmt.Fprint(os.Stderr, mintTokenUsage)
		return fmt.Errorf("-auth.secret is required")
	}

	st := store.Seed()
	u, ok := st.UserByID(userID)
	if !ok {
		return fmt.Errorf("unknown user id %d", userID)
	}
	cfg := config.Default()
	token, err := auth.Mint([]byte(secret), cfg.Auth.Issuer, u.ID, ttl)
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}
	fmt.Println(token)
	return nil
}
