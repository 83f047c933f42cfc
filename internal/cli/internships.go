package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/futureintern/platform/internal/gateway"
	"github.com/spf13/cobra"
)

func (a *App) printInternships(w io.Writer, items []gateway.Internship) error {
	if a.jsonOut() {
		return printJSON(w, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "No internships found")
		return nil
	}

	t := newTable(w)
	printTableHeader(t, "ID", "TITLE", "COMPANY", "LOCATION", "TYPE", "DEADLINE")
	for _, in := range items {
		fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%s\t%s\n",
			in.ID,
			truncate(in.Title, 40),
			truncate(orDash(in.Company.Name), 24),
			orDash(in.Location),
			orDash(in.Type),
			formatDate(in.Deadline),
		)
	}
	return t.Flush()
}

func (a *App) printInternship(w io.Writer, in *gateway.Internship) error {
	if a.jsonOut() {
		return printJSON(w, in)
	}

	t := newTable(w)
	row := func(k, v string) { fmt.Fprintf(t, "%s:\t%s\n", k, orDash(v)) }
	row("ID", fmt.Sprint(in.ID))
	row("Title", in.Title)
	row("Company", in.Company.Name)
	row("Location", in.Location)
	row("Type", in.Type)
	row("Duration", in.Duration)
	row("Stipend", in.Stipend)
	row("Skills", strings.Join(in.RequiredSkills, ", "))
	row("Major", in.RequiredMajor)
	row("Deadline", formatDate(in.Deadline))
	row("Active", fmt.Sprint(in.IsActive))
	if err := t.Flush(); err != nil {
		return err
	}
	if in.Description != "" {
		fmt.Fprintf(w, "\n%s\n", in.Description)
	}
	if in.Requirements != "" {
		fmt.Fprintf(w, "\nRequirements:\n%s\n", in.Requirements)
	}
	return nil
}

func (a *App) internshipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "internships",
		Aliases: []string{"internship", "in"},
		Short:   "Browse and manage internships",
	}
	cmd.AddCommand(
		a.internshipsListCmd(),
		a.internshipsGetCmd(),
		a.internshipsCreateCmd(),
		a.internshipsUpdateCmd(),
		a.internshipsDeleteCmd(),
		a.internshipsMineCmd(),
	)
	return cmd
}

func (a *App) internshipsListCmd() *cobra.Command {
	var params gateway.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open internships",
		Long: `List open internships, newest first.

Examples:
  futureintern internships list
  futureintern internships list --search backend --location Cairo --type remote
  futureintern internships list --page 2 --per-page 20 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := a.client.Internships.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), page)
			}
			if err := a.printInternships(cmd.OutOrStdout(), page.Internships); err != nil {
				return err
			}
			if page.Pages > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d total)\n", page.Page, page.Pages, page.Total)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number")
	f.IntVar(&params.PerPage, "per-page", 10, "results per page (max 100)")
	f.StringVarP(&params.Search, "search", "s", "", "search title, description and company")
	f.StringVar(&params.Location, "location", "", "filter by location")
	f.StringVar(&params.Type, "type", "", "filter by type (full-time, part-time, remote, ...)")
	f.Int64Var(&params.CompanyID, "company", 0, "filter by company id")
	return cmd
}

func (a *App) internshipsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one internship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := a.client.Internships.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printInternship(cmd.OutOrStdout(), in)
		},
	}
}

// internshipFlags registers the create/update fields on cmd and returns a
// function that builds the input from the flags that were set.
func internshipFlags(cmd *cobra.Command) func() (gateway.InternshipInput, error) {
	var (
		in       gateway.InternshipInput
		skills   string
		deadline string
		active   bool
	)

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "title")
	f.StringVar(&in.Description, "description", "", "description")
	f.StringVar(&in.Requirements, "requirements", "", "requirements")
	f.StringVar(&in.Location, "location", "", "location")
	f.StringVar(&in.Duration, "duration", "", "duration, e.g. \"3 months\"")
	f.StringVar(&in.Stipend, "stipend", "", "stipend")
	f.StringVar(&in.Type, "type", "", "type (full-time, part-time, remote, hybrid, on-site)")
	f.StringVar(&skills, "skills", "", "comma separated required skills")
	f.StringVar(&in.RequiredMajor, "major", "", "preferred major")
	f.StringVar(&deadline, "deadline", "", "application deadline (YYYY-MM-DD)")
	f.BoolVar(&active, "active", true, "accept applications")

	return func() (gateway.InternshipInput, error) {
		out := in
		if f.Changed("skills") {
			out.RequiredSkills = gateway.SplitList(skills)
		}
		if f.Changed("active") {
			out.IsActive = &active
		}
		if deadline != "" {
			d, err := time.Parse("2006-01-02", deadline)
			if err != nil {
				return out, fmt.Errorf("invalid --deadline %q: use YYYY-MM-DD", deadline)
			}
			out.Deadline = &d
		}
		return out, nil
	}
}

func (a *App) internshipsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new internship (approved companies)",
		Args:  cobra.NoArgs,
	}
	build := internshipFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		input, err := build()
		if err != nil {
			return err
		}
		if input.Title == "" || input.Description == "" {
			return fmt.Errorf("--title and --description are required")
		}
		created, err := a.client.Internships.Create(cmd.Context(), input)
		if err != nil {
			return err
		}
		if a.jsonOut() {
			return printJSON(cmd.OutOrStdout(), created)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created internship %d: %s\n", created.ID, created.Title)
		return nil
	}
	return cmd
}

func (a *App) internshipsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an internship you own; only the flags you pass are sent",
		Args:  cobra.ExactArgs(1),
	}
	build := internshipFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		input, err := build()
		if err != nil {
			return err
		}
		updated, err := a.client.Internships.Update(cmd.Context(), id, input)
		if err != nil {
			return err
		}
		return a.printInternship(cmd.OutOrStdout(), updated)
	}
	return cmd
}

func (a *App) internshipsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an internship you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Internships.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted internship %d\n", id)
			return nil
		},
	}
}

func (a *App) internshipsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the internships your company posted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			items, err := a.client.Internships.Mine(cmd.Context())
			if err != nil {
				return err
			}
			return a.printInternships(cmd.OutOrStdout(), items)
		},
	}
}
