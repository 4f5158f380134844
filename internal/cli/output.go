package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hackmd-tools/hackmd-cli/models"
)

// render prints the command payload in the selected output format.
func (c *CLI) render(payload any) error {
	switch c.flags.format {
	case "json":
		return c.renderJSON(payload)
	case "csv":
		return c.renderCSV(payload)
	case "", "table":
		return c.renderTable(payload)
	default:
		return &exitError{
			code:    models.ClassClientError.ExitCode(),
			message: fmt.Sprintf("unknown output format %q, expected table, json or csv", c.flags.format),
		}
	}
}

func (c *CLI) renderJSON(payload any) error {
	if payload == nil {
		payload = map[string]string{"status": "ok"}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return &exitError{code: 1, message: fmt.Sprintf("encode output: %v", err)}
	}
	fmt.Fprintln(c.out, string(data))
	return nil
}

func (c *CLI) renderTable(payload any) error {
	switch p := payload.(type) {
	case nil:
		fmt.Fprintln(c.out, "OK")

	case string:
		fmt.Fprintln(c.out, p)

	case []string:
		for _, s := range p {
			fmt.Fprintln(c.out, s)
		}

	case []models.Note:
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tLAST CHANGED\tTAGS")
		for _, n := range p {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				n.ID, n.Title, formatMillis(n.LastChangedAt), strings.Join(n.Tags, ","))
		}
		return w.Flush()

	case models.Note:
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%s\n", p.ID)
		fmt.Fprintf(w, "Title:\t%s\n", p.Title)
		if len(p.Tags) > 0 {
			fmt.Fprintf(w, "Tags:\t%s\n", strings.Join(p.Tags, ","))
		}
		fmt.Fprintf(w, "Created:\t%s\n", formatMillis(p.CreatedAt))
		fmt.Fprintf(w, "Changed:\t%s\n", formatMillis(p.LastChangedAt))
		if p.PublishLink != "" {
			fmt.Fprintf(w, "Published:\t%s\n", p.PublishLink)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if p.Content != "" {
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, p.Content)
		}

	case []models.Team:
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPATH")
		for _, t := range p {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Path)
		}
		return w.Flush()

	case models.AuthStatus:
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Status:\t%s\n", p.State)
		fmt.Fprintf(w, "Profile:\t%s\n", p.Profile)
		if p.User != nil {
			fmt.Fprintf(w, "User:\t%s\n", p.User.Name)
			if p.User.Email != "" {
				fmt.Fprintf(w, "Email:\t%s\n", p.User.Email)
			}
		}
		if p.MaskedToken != "" {
			fmt.Fprintf(w, "Token:\t%s\n", p.MaskedToken)
		}
		if !p.VerifiedAt.IsZero() {
			fmt.Fprintf(w, "Verified:\t%s\n", p.VerifiedAt.Format(time.RFC3339))
		}
		return w.Flush()

	default:
		return c.renderJSON(payload)
	}
	return nil
}

// renderCSV prints list payloads as CSV; scalar payloads fall back to the
// table renderer.
func (c *CLI) renderCSV(payload any) error {
	w := csv.NewWriter(c.out)

	switch p := payload.(type) {
	case []models.Note:
		if err := w.Write([]string{"id", "title", "created_at", "last_changed_at", "tags"}); err != nil {
			return err
		}
		for _, n := range p {
			record := []string{
				n.ID, n.Title, formatMillis(n.CreatedAt), formatMillis(n.LastChangedAt),
				strings.Join(n.Tags, ";"),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}

	case []models.Team:
		if err := w.Write([]string{"id", "name", "path", "description"}); err != nil {
			return err
		}
		for _, t := range p {
			if err := w.Write([]string{t.ID, t.Name, t.Path, t.Description}); err != nil {
				return err
			}
		}

	case []string:
		for _, s := range p {
			if err := w.Write([]string{s}); err != nil {
				return err
			}
		}

	default:
		return c.renderTable(payload)
	}

	w.Flush()
	return w.Error()
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}
