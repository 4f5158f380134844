package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hackmd-tools/hackmd-cli/models"
)

func (c *CLI) newTemplateCommand() *cobra.Command {
	tpl := &cobra.Command{
		Use:   "template",
		Short: "Manage local markdown templates",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Install the built-in templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{Resource: "template", Verb: "init"})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List installed templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{Resource: "template", Verb: "list"})
		},
	}

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template's raw body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "template",
				Verb:     "show",
				Params:   map[string]string{"name": args[0]},
			})
		},
	}

	var renderVars []string
	render := &cobra.Command{
		Use:   "render <name>",
		Short: "Render a template with variables filled in",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]string{"name": args[0]}
			for _, v := range renderVars {
				key, value, ok := strings.Cut(v, "=")
				if !ok || key == "" {
					return &exitError{
						code:    models.ClassClientError.ExitCode(),
						message: fmt.Sprintf("invalid --var %q, expected key=value", v),
					}
				}
				params[key] = value
			}
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "template",
				Verb:     "render",
				Params:   params,
			})
		},
		Args: cobra.ExactArgs(1),
	}
	render.Flags().StringArrayVar(&renderVars, "var", nil, "template variable as key=value (repeatable)")

	var saveFile string
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Create or overwrite a template from a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(saveFile)
			if err != nil {
				return &exitError{
					code:    models.ClassLocalIOError.ExitCode(),
					message: fmt.Sprintf("read %s: %v", saveFile, err),
				}
			}
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "template",
				Verb:     "save",
				Params:   map[string]string{"name": args[0], "content": string(data)},
			})
		},
	}
	save.Flags().StringVar(&saveFile, "file", "", "markdown file with the template body")
	_ = save.MarkFlagRequired("file")

	tpl.AddCommand(initCmd, list, show, render, save)
	return tpl
}
