package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/devfolio/internal/client/api"
	"github.com/dmitrijs2005/devfolio/internal/client/forms"
	"github.com/dmitrijs2005/devfolio/internal/client/models"
	"github.com/dmitrijs2005/devfolio/internal/client/services"
)

// MessageTableUnavailable replaces a table that failed to render.
const MessageTableUnavailable = "Unable to display projects right now."

// describeError turns a command error into printable lines: the message,
// then one line per field error or failed batch item.
func describeError(err error) []string {
	var de *services.DeleteError
	if errors.As(err, &de) {
		lines := []string{"Error: " + de.Error()}
		for _, id := range sortedIDs(de.Failed) {
			lines = append(lines, fmt.Sprintf("  #%d: %s", id, de.Failed[id].Error()))
		}
		return lines
	}

	lines := []string{"Error: " + err.Error()}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		for _, fe := range apiErr.FieldErrors() {
			lines = append(lines, "  "+fe)
		}
	}
	return lines
}

// writeRows prints label/value pairs aligned in two columns.
func writeRows(w io.Writer, rows []forms.Row) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r.Label, r.Value)
	}
	tw.Flush()
}

// writeTable prints one header line and a line per record.
func writeTable[T any](w io.Writer, fields []forms.Field[T], items []T) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = strings.ToUpper(f.Label)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, item := range items {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = truncate(f.Get(item), 40)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// writeProjects renders the projects grid. A panic while rendering prints
// MessageTableUnavailable instead of taking the REPL down.
func writeProjects(w io.Writer, fields []forms.Field[models.Project], page models.Page[models.Project]) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(w, MessageTableUnavailable)
		}
	}()

	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return
	}
	writeTable(w, fields, page.Items)
	fmt.Fprintf(w, "Page %d of %d (%d projects)\n", page.Page, page.TotalPages, page.TotalCount)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Columns shown in listings; detail views use the full descriptor lists.
var (
	projectColumns = pick(forms.ProjectFields, "id", "title", "status", "techStackName", "isFeatured")
	stackColumns   = pick(forms.TechStackFields, "id", "name", "category")
	repoColumns    = pick(forms.RepositoryFields, "id", "name", "language", "stars", "url")
	userColumns    = pick(forms.UserFields, "username", "email", "role", "isActive")
)

func pick[T any](fields []forms.Field[T], keys ...string) []forms.Field[T] {
	out := make([]forms.Field[T], 0, len(keys))
	for _, k := range keys {
		for _, f := range fields {
			if f.Key == k {
				out = append(out, f)
			}
		}
	}
	return out
}

func sortedIDs(m map[int64]error) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
