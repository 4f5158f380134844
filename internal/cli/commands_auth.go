package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hackmd-tools/hackmd-cli/models"
)

func (c *CLI) newAuthCommand() *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Log in, check and discard the stored API token",
	}

	var token string
	login := &cobra.Command{
		Use:   "login",
		Short: "Validate an API token and store it",
		Long: `Validate a HackMD API token against the API and store it for later
commands. Tokens are created under Settings > API on hackmd.io. Without
--token the token is read from the terminal without echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := token
			if t == "" {
				var err error
				if t, err = c.promptToken(); err != nil {
					return &exitError{code: 1, message: err.Error()}
				}
			}
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "auth",
				Verb:     "login",
				Params:   map[string]string{"token": t, "profile": c.flags.profile},
			})
		},
	}
	login.Flags().StringVar(&token, "token", "", "API token (prompted when omitted)")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether the stored token is still valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "auth",
				Verb:     "status",
				Params:   map[string]string{"profile": c.flags.profile},
			})
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "auth",
				Verb:     "logout",
				Params:   map[string]string{"profile": c.flags.profile},
			})
		},
	}

	auth.AddCommand(login, status, logout)
	return auth
}

// promptToken reads the token from the terminal with echo disabled,
// falling back to a plain line read when stdin is not a terminal (pipes,
// tests).
func (c *CLI) promptToken() (string, error) {
	fmt.Fprint(c.errOut, "HackMD API token: ")

	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.errOut)
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}
