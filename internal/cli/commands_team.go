package cli

import (
	"github.com/spf13/cobra"

	"github.com/hackmd-tools/hackmd-cli/models"
)

func (c *CLI) newTeamCommand() *cobra.Command {
	team := &cobra.Command{
		Use:   "team",
		Short: "Browse your teams and their notes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the teams you belong to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{Resource: "team", Verb: "list"})
		},
	}

	notes := &cobra.Command{
		Use:   "notes <team-path>",
		Short: "List a team's notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "team",
				Verb:     "notes",
				Params:   map[string]string{"path": args[0]},
			})
		},
	}

	team.AddCommand(list, notes)
	return team
}
