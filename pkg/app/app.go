// Package app provides the scaffolding shared by the project's commands:
// cobra wiring, option flags and validation, and the run entrypoint.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kiosk404/animus/pkg/version"
)

// CliOptions abstracts the option sections a command exposes as flags.
type CliOptions interface {
	AddFlags(fs *pflag.FlagSet)
	Validate() []error
}

// RunFunc is the command's business entrypoint.
type RunFunc func(basename string) error

// App is a single command-line application.
type App struct {
	name        string
	basename    string
	description string
	options     CliOptions
	runFunc     RunFunc
	noArgs      bool

	cmd *cobra.Command
}

// Option configures an App during construction.
type Option func(*App)

// WithOptions attaches the option sections whose flags the command exposes.
func WithOptions(opts CliOptions) Option {
	return func(a *App) { a.options = opts }
}

// WithDescription sets the long help text.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithRunFunc sets the business entrypoint.
func WithRunFunc(fn RunFunc) Option {
	return func(a *App) { a.runFunc = fn }
}

// WithDefaultValidArgs rejects any positional argument.
func WithDefaultValidArgs() Option {
	return func(a *App) { a.noArgs = true }
}

// NewApp builds the application with the given name, command basename and
// options.
func NewApp(name, basename string, opts ...Option) *App {
	a := &App{name: name, basename: basename}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.basename,
		Short:         a.name,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if a.noArgs {
		cmd.Args = cobra.NoArgs
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().SortFlags = false
	if a.options != nil {
		a.options.AddFlags(cmd.Flags())
	}
	addConfigFlag(cmd.PersistentFlags())

	printVersion := cmd.Flags().Bool("version", false, "Print version information and quit.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if *printVersion {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		}
		if a.options != nil {
			if errs := a.options.Validate(); len(errs) > 0 {
				return fmt.Errorf("invalid configuration: %v", errs)
			}
		}
		if a.runFunc != nil {
			return a.runFunc(a.basename)
		}
		return nil
	}

	a.cmd = cmd
}

// Command exposes the underlying cobra command, mainly for tests.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Run executes the application, exiting non-zero on error.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
