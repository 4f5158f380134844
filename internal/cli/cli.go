// Package cli translates the cobra command tree into dispatcher requests
// and renders the results. It owns no application logic: every command
// builds a [models.CommandRequest], hands it to the dispatcher and prints
// the outcome in the selected output format.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/models"
)

// Dispatcher executes one validated command and returns its classified
// result. Implemented by the command router.
type Dispatcher interface {
	Dispatch(ctx context.Context, req models.CommandRequest) models.CommandResult
}

// DispatcherFactory builds the dispatcher once global flag values are
// known, so flag overrides participate in configuration merging before any
// infrastructure is constructed.
type DispatcherFactory func(overrides *config.StructuredConfig) (Dispatcher, error)

type rootFlags struct {
	configFile string
	profile    string
	apiURL     string
	timeout    time.Duration
	format     string
}

// CLI is the command-line front end.
type CLI struct {
	factory    DispatcherFactory
	dispatcher Dispatcher

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	flags rootFlags

	logger *logger.Logger
}

// New constructs the CLI around a dispatcher factory.
func New(factory DispatcherFactory, log *logger.Logger) *CLI {
	return &CLI{
		factory: factory,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		logger:  log.GetChildLogger("cli"),
	}
}

// exitError carries the process exit code through cobra's error return.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string {
	return e.message
}

// Run parses args, executes the selected command and returns the process
// exit code: 0 on success, the error-class code on classified failures, 1
// for anything else.
func (c *CLI) Run(ctx context.Context, args []string) int {
	root := c.newRootCommand()
	root.SetArgs(args)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		return 1
	}
	return 0
}

func (c *CLI) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "hackmd",
		Short: "Manage HackMD notes from the command line",
		Long: `hackmd is a command-line client for HackMD.

Log in once with a HackMD API token, then list, read, create, update and
delete notes, browse team notes, and create notes from local markdown
templates.

Examples:
  hackmd auth login                  # paste your API token interactively
  hackmd note list -o json           # list notes as JSON
  hackmd note create --title "Idea"  # create an empty note
  hackmd template init               # install the built-in templates`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initDispatcher()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configFile, "config", "", "path to a JSON config file")
	pf.StringVar(&c.flags.profile, "profile", "", "credential profile to operate on")
	pf.StringVar(&c.flags.apiURL, "api-url", "", "HackMD API base URL (self-hosted deployments)")
	pf.DurationVar(&c.flags.timeout, "timeout", 0, "per-request timeout, e.g. 15s")
	pf.StringVarP(&c.flags.format, "output", "o", "table", "output format: table, json or csv")

	root.AddCommand(
		c.newAuthCommand(),
		c.newNoteCommand(),
		c.newTeamCommand(),
		c.newTemplateCommand(),
	)

	return root
}

// initDispatcher folds the global flags into the configuration overrides
// and builds the dispatcher through the factory.
func (c *CLI) initDispatcher() error {
	if c.dispatcher != nil {
		return nil
	}

	overrides := &config.StructuredConfig{
		API: config.API{
			BaseURL:        c.flags.apiURL,
			RequestTimeout: c.flags.timeout,
		},
		Credentials: config.Credentials{
			Profile: c.flags.profile,
		},
		JSONFilePath: c.flags.configFile,
	}

	d, err := c.factory(overrides)
	if err != nil {
		return &exitError{code: 1, message: err.Error()}
	}
	c.dispatcher = d
	return nil
}

// dispatch runs one command through the router and renders the payload.
func (c *CLI) dispatch(cmd *cobra.Command, req models.CommandRequest) error {
	res := c.dispatcher.Dispatch(cmd.Context(), req)
	if !res.Succeeded() {
		return &exitError{code: res.ExitCode(), message: res.Err.Error()}
	}
	return c.render(res.Payload)
}
