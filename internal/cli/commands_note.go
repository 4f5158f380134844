package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hackmd-tools/hackmd-cli/models"
)

func (c *CLI) newNoteCommand() *cobra.Command {
	note := &cobra.Command{
		Use:   "note",
		Short: "List, read, create, update and delete notes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{Resource: "note", Verb: "list"})
		},
	}

	get := &cobra.Command{
		Use:   "get <note-id>",
		Short: "Print a note with its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "note",
				Verb:     "get",
				Params:   map[string]string{"id": args[0]},
			})
		},
	}

	var (
		title        string
		content      string
		contentFile  string
		templateName string
		templateVars []string
		readPerm     string
		writePerm    string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Long: `Create a note from inline content, a local file or an installed
template. Template placeholders are filled from --var key=value pairs plus
built-in date and time variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := content
			switch {
			case contentFile != "":
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return &exitError{
						code:    models.ClassLocalIOError.ExitCode(),
						message: fmt.Sprintf("read %s: %v", contentFile, err),
					}
				}
				body = string(data)
			case templateName != "":
				rendered, err := c.renderTemplate(cmd, templateName, templateVars)
				if err != nil {
					return err
				}
				body = rendered
			}

			return c.dispatch(cmd, models.CommandRequest{
				Resource: "note",
				Verb:     "create",
				Params: map[string]string{
					"title":            title,
					"content":          body,
					"read-permission":  readPerm,
					"write-permission": writePerm,
				},
			})
		},
	}
	create.Flags().StringVar(&title, "title", "", "note title")
	create.Flags().StringVar(&content, "content", "", "markdown content")
	create.Flags().StringVar(&contentFile, "file", "", "read content from a markdown file")
	create.Flags().StringVar(&templateName, "template", "", "create content from an installed template")
	create.Flags().StringArrayVar(&templateVars, "var", nil, "template variable as key=value (repeatable)")
	create.Flags().StringVar(&readPerm, "read-permission", "", "read permission: owner, signed_in or guest")
	create.Flags().StringVar(&writePerm, "write-permission", "", "write permission: owner, signed_in or guest")
	create.MarkFlagsMutuallyExclusive("content", "file", "template")

	var (
		updContent     string
		updContentFile string
		updReadPerm    string
		updWritePerm   string
	)
	update := &cobra.Command{
		Use:   "update <note-id>",
		Short: "Replace a note's content or permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := updContent
			if updContentFile != "" {
				data, err := os.ReadFile(updContentFile)
				if err != nil {
					return &exitError{
						code:    models.ClassLocalIOError.ExitCode(),
						message: fmt.Sprintf("read %s: %v", updContentFile, err),
					}
				}
				body = string(data)
			}

			return c.dispatch(cmd, models.CommandRequest{
				Resource: "note",
				Verb:     "update",
				Params: map[string]string{
					"id":               args[0],
					"content":          body,
					"read-permission":  updReadPerm,
					"write-permission": updWritePerm,
				},
			})
		},
	}
	update.Flags().StringVar(&updContent, "content", "", "replacement markdown content")
	update.Flags().StringVar(&updContentFile, "file", "", "read replacement content from a markdown file")
	update.Flags().StringVar(&updReadPerm, "read-permission", "", "read permission: owner, signed_in or guest")
	update.Flags().StringVar(&updWritePerm, "write-permission", "", "write permission: owner, signed_in or guest")
	update.MarkFlagsMutuallyExclusive("content", "file")

	del := &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd, models.CommandRequest{
				Resource: "note",
				Verb:     "delete",
				Params:   map[string]string{"id": args[0]},
			})
		},
	}

	note.AddCommand(list, get, create, update, del)
	return note
}

// renderTemplate resolves a --template flag through the dispatcher so the
// created note goes through the same template pipeline as `template render`.
func (c *CLI) renderTemplate(cmd *cobra.Command, name string, varFlags []string) (string, error) {
	params := map[string]string{"name": name}
	for _, v := range varFlags {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return "", &exitError{
				code:    models.ClassClientError.ExitCode(),
				message: fmt.Sprintf("invalid --var %q, expected key=value", v),
			}
		}
		params[key] = value
	}

	res := c.dispatcher.Dispatch(cmd.Context(), models.CommandRequest{
		Resource: "template",
		Verb:     "render",
		Params:   params,
	})
	if !res.Succeeded() {
		return "", &exitError{code: res.ExitCode(), message: res.Err.Error()}
	}

	rendered, ok := res.Payload.(string)
	if !ok {
		return "", &exitError{code: 1, message: "unexpected template render payload"}
	}
	return rendered, nil
}
