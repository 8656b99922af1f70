// Command foodcart-auth drives the session store from a terminal the way the
// web UI drives it from the browser.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/target/foodcart/config"
	"github.com/target/foodcart/internal/adapters/authapi"
	"github.com/target/foodcart/internal/bootstrap"
	domainauth "github.com/target/foodcart/internal/domain/auth"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Client *bootstrap.SessionClient
	Out    io.Writer
}

var (
	errValidation       = errors.New("form validation failed")
	errRejected         = errors.New("request rejected")
	errNotAuthenticated = errors.New("not logged in")
)

func main() {
	logger := bootstrap.InitLoggerTo(os.Stderr, slog.LevelWarn)

	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		_, _ = fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage(os.Stdout)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if runErr := run(ctx, cmd, os.Args[2:], &cfg, logger, os.Stdout); runErr != nil {
		if !errors.Is(runErr, errValidation) && !errors.Is(runErr, errRejected) && !errors.Is(runErr, errNotAuthenticated) {
			logger.Error("command failed", "command", cmdName, "error", runErr)
		}
		stop()
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func run(ctx context.Context, cmd command, args []string, cfg *config.AppConfig, logger *slog.Logger, out io.Writer) error {
	client, err := bootstrap.BuildSessionClient(ctx, bootstrap.ClientDeps{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("close session client", "error", cerr)
		}
	}()

	return cmd.run(&commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: *cfg,
		Client: client,
		Out:    out,
	}, args)
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Log in with -email and -password and persist the token",
			run:         runLogin,
		},
		"signup": {
			name:        "signup",
			description: "Create an account with -email, -password and -confirm",
			run:         runSignup,
		},
		"logout": {
			name:        "logout",
			description: "Drop the persisted token",
			run:         runLogout,
		},
		"status": {
			name:        "status",
			description: "Verify the persisted token and print the session",
			run:         runStatus,
		},
		"whoami": {
			name:        "whoami",
			description: "Print the logged-in email (exit 1 when logged out)",
			run:         runWhoami,
		},
		"get": {
			name:        "get",
			description: "GET an authenticated API path given with -path and print the JSON",
			run:         runGet,
		},
		"strength": {
			name:        "strength",
			description: "Score a password given with -password",
			run:         runStrength,
		},
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: foodcart-auth <command> [flags]\n\nAvailable commands:\n")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %-10s %s\n", name, cmds[name].description)
	}
}

type credentialOptions struct {
	Email    string
	Password string
	Confirm  string
}

func parseCredentials(name string, args []string, withConfirm bool) (credentialOptions, error) {
	var opts credentialOptions
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.Email, "email", "", "account email")
	fs.StringVar(&opts.Password, "password", "", "account password")
	if withConfirm {
		fs.StringVar(&opts.Confirm, "confirm", "", "password confirmation")
	}
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("parse %s flags: %w", name, err)
	}
	return opts, nil
}

func runLogin(ctx *commandContext, args []string) error {
	opts, err := parseCredentials("login", args, false)
	if err != nil {
		return err
	}
	form := domainauth.Form{Email: opts.Email, Password: opts.Password}
	if err := checkForm(ctx.Out, form, domainauth.FormLogin); err != nil {
		return err
	}

	res := ctx.Client.Store.Login(ctx.Ctx, strings.TrimSpace(opts.Email), opts.Password)
	if !res.Success {
		printf(ctx.Out, "Login failed: %s\n", ctx.Client.Store.State().Error)
		return errRejected
	}
	printf(ctx.Out, "Logged in as %s\n", ctx.Client.Store.State().Email())
	return nil
}

func runSignup(ctx *commandContext, args []string) error {
	opts, err := parseCredentials("signup", args, true)
	if err != nil {
		return err
	}
	form := domainauth.Form{Email: opts.Email, Password: opts.Password, ConfirmPassword: opts.Confirm}
	if err := checkForm(ctx.Out, form, domainauth.FormSignup); err != nil {
		return err
	}

	res := ctx.Client.Store.Signup(ctx.Ctx, strings.TrimSpace(opts.Email), opts.Password)
	if !res.Success {
		printf(ctx.Out, "Signup failed: %s\n", ctx.Client.Store.State().Error)
		printFieldErrors(ctx.Out, res.Errors)
		return errRejected
	}
	printf(ctx.Out, "%s\n", ctx.Client.Store.State().Message)
	return nil
}

func runLogout(ctx *commandContext, _ []string) error {
	ctx.Client.Store.Logout(ctx.Ctx)
	printf(ctx.Out, "Logged out\n")
	return nil
}

func runStatus(ctx *commandContext, _ []string) error {
	ctx.Client.Store.CheckAuthStatus(ctx.Ctx)
	st := ctx.Client.Store.State()
	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(statusOutput{Phase: st.Phase(), Session: st})
}

type statusOutput struct {
	Phase domainauth.Phase `json:"phase"`
	domainauth.Session
}

func runWhoami(ctx *commandContext, _ []string) error {
	ctx.Client.Store.CheckAuthStatus(ctx.Ctx)
	st := ctx.Client.Store.State()
	if !st.IsAuthenticated {
		printf(ctx.Out, "Not logged in\n")
		return errNotAuthenticated
	}
	printf(ctx.Out, "%s\n", st.Email())
	return nil
}

func runGet(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("path", "", "API path relative to CLIENT_API_BASE_URL, e.g. /health")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse get flags: %w", err)
	}
	if *path == "" {
		return errors.New("-path is required")
	}
	gw, ok := ctx.Client.Gateway.(*authapi.Gateway)
	if !ok {
		return errors.New("get needs AUTH_MODE=api")
	}

	var out json.RawMessage
	if err := gw.Fetch(ctx.Ctx, http.MethodGet, "/"+strings.TrimLeft(*path, "/"), nil, &out); err != nil {
		if errors.Is(err, authapi.ErrRequestFailed) {
			printf(ctx.Out, "%v\n", err)
			return errRejected
		}
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, out, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	printf(ctx.Out, "%s\n", pretty.String())
	return nil
}

func runStrength(ctx *commandContext, args []string) error {
	opts, err := parseCredentials("strength", args, false)
	if err != nil {
		return err
	}
	s := domainauth.PasswordStrength(opts.Password)
	printf(ctx.Out, "%d/6 %s\n", s.Score, s.Feedback)
	return nil
}

func checkForm(out io.Writer, form domainauth.Form, kind domainauth.FormKind) error {
	v := domainauth.ValidateForm(form, kind)
	if v.IsValid {
		return nil
	}
	printFieldErrors(out, v.Errors)
	return errValidation
}

func printFieldErrors(out io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printf(out, "  %s: %s\n", k, fields[k])
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
