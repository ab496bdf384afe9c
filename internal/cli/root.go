// Package cli is the hoteladmin command-line shell. It restores the session,
// runs role commands through the access gate, and reports navigation the
// core asks for.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/hongminglow/hotel-admin/internal/apiclient"
	"github.com/hongminglow/hotel-admin/internal/app"
	"github.com/hongminglow/hotel-admin/internal/dashboard"
	"github.com/hongminglow/hotel-admin/internal/gate"
)

// errRedirected ends a command whose route the gate refused; the redirect
// itself has already been recorded.
var errRedirected = errors.New("redirected")

// Factory builds the App a command runs against.
type Factory func(ctx context.Context, nav app.Navigator) (*app.App, error)

type shell struct {
	factory Factory
	format  string

	app      *app.App
	restored bool

	mu       sync.Mutex
	redirect string
}

// Run executes args and returns the process exit code.
func Run(ctx context.Context, factory Factory, args []string, stdout, stderr io.Writer) int {
	sh := &shell{factory: factory}
	root := sh.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if sh.app != nil {
		if cerr := sh.app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err == nil {
		return 0
	}
	if msg := redirectMessage(sh.target()); msg != "" {
		fmt.Fprintln(stderr, msg)
	}
	if !errors.Is(err, errRedirected) {
		fmt.Fprintln(stderr, "Error:", describe(err))
	}
	return 1
}

func (sh *shell) rootCommand() *cobra.Command {
	cobra.EnableTraverseRunHooks = true

	root := &cobra.Command{
		Use:               "hoteladmin",
		Short:             "Hotel booking administration client",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: sh.open,
	}
	root.PersistentFlags().StringVarP(&sh.format, "output", "o", formatTable, "output format: table, json, or yaml")

	root.AddCommand(
		sh.loginCommand(),
		sh.registerCommand(),
		sh.logoutCommand(),
		sh.whoamiCommand(),
		sh.guestCommand(),
		sh.managerCommand(),
		sh.adminCommand(),
	)
	return root
}

func (sh *shell) open(cmd *cobra.Command, _ []string) error {
	if err := validFormat(sh.format); err != nil {
		return err
	}
	a, err := sh.factory(cmd.Context(), app.NavigatorFunc(sh.navigate))
	if err != nil {
		return err
	}
	sh.app = a
	return nil
}

func (sh *shell) navigate(_ context.Context, path string) {
	sh.mu.Lock()
	sh.redirect = path
	sh.mu.Unlock()
}

func (sh *shell) target() string {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.redirect
}

func (sh *shell) forget() {
	sh.mu.Lock()
	sh.redirect = ""
	sh.mu.Unlock()
}

// restore resolves the persisted session once per invocation. A failed
// restore leaves the session unauthenticated and the gate takes it from there.
func (sh *shell) restore(ctx context.Context) {
	if sh.restored {
		return
	}
	sh.restored = true
	if err := sh.app.Restore(ctx); err != nil {
		sh.app.Logger.WarnContext(ctx, "session restore failed", "error", err)
	}
}

// gated runs path through the access gate before any command of a role group.
func (sh *shell) gated(path string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		sh.restore(ctx)
		d := sh.app.Enter(ctx, path)
		switch {
		case d.Render():
			return nil
		case d.Loading():
			return errors.New("session is still being resolved")
		default:
			return errRedirected
		}
	}
}

func (sh *shell) printer(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout(), format: sh.format}
}

func redirectMessage(path string) string {
	switch path {
	case "":
		return ""
	case gate.LoginPath:
		return "Please log in to continue: hoteladmin login --email <email>"
	case gate.UnauthorizedPath:
		return "Unauthorized: your role cannot access this area."
	default:
		return "Continue at " + path
	}
}

// actionError names the user action that failed so it can be described.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }
func (e *actionError) Unwrap() error { return e.err }

func fail(action string, err error) error {
	if err == nil {
		return nil
	}
	return &actionError{action: action, err: err}
}

func describe(err error) string {
	var ae *actionError
	if errors.As(err, &ae) {
		return dashboard.Describe(ae.action, ae.err)
	}
	if apiclient.KindOf(err) != 0 {
		return dashboard.Describe("complete the request", err)
	}
	return err.Error()
}
