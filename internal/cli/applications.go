package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/futureintern/platform/internal/gateway"
	"github.com/spf13/cobra"
)

var applicationStatuses = []gateway.ApplicationStatus{
	gateway.StatusPending,
	gateway.StatusUnderReview,
	gateway.StatusAccepted,
	gateway.StatusRejected,
	gateway.StatusWithdrawn,
}

// parseStatus accepts the wire value or a dashed form ("under-review").
func parseStatus(s string) (gateway.ApplicationStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", " ")))
	for _, st := range applicationStatuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (use pending, under-review, accepted, rejected or withdrawn)", s)
}

func applicationTitle(app gateway.Application) string {
	if app.Internship != nil && app.Internship.Title != "" {
		return app.Internship.Title
	}
	return fmt.Sprintf("internship %d", app.InternshipID)
}

func (a *App) printApplications(w io.Writer, apps []gateway.Application) error {
	if a.jsonOut() {
		return printJSON(w, apps)
	}
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications found")
		return nil
	}

	t := newTable(w)
	printTableHeader(t, "ID", "INTERNSHIP", "STUDENT", "STATUS", "MATCH", "APPLIED")
	for _, app := range apps {
		student := "-"
		if app.Student != nil {
			student = app.Student.DisplayName()
		}
		match := "-"
		if app.MatchScore != nil {
			match = fmt.Sprintf("%.0f%%", *app.MatchScore)
		}
		fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%s\t%s\n",
			app.ID,
			truncate(applicationTitle(app), 36),
			truncate(student, 24),
			app.Status.Label(),
			match,
			formatDate(app.AppliedAt),
		)
	}
	return t.Flush()
}

func (a *App) printApplication(w io.Writer, app *gateway.Application) error {
	return a.printApplications(w, []gateway.Application{*app})
}

func (a *App) applicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"application", "apps"},
		Short:   "Apply for internships and track applications",
	}

	var internshipID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List your applications, or those for one of your internships",
		Long: `Students see their own applications. Companies and admins pass
--internship to see who applied to a posting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			var (
				apps []gateway.Application
				err  error
			)
			if internshipID > 0 {
				apps, err = a.client.Applications.ForInternship(cmd.Context(), internshipID)
			} else {
				apps, err = a.client.Applications.Mine(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.printApplications(cmd.OutOrStdout(), apps)
		},
	}
	list.Flags().Int64Var(&internshipID, "internship", 0, "list applications for this internship id")

	get := a.applicationByID("get", "Show one application", func(cmd *cobra.Command, id int64) (*gateway.Application, error) {
		return a.client.Applications.Get(cmd.Context(), id)
	})

	var coverLetter string
	apply := &cobra.Command{
		Use:   "apply <internship-id>",
		Short: "Apply for an internship (students)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := a.client.Applications.Apply(cmd.Context(), gateway.ApplyRequest{
				InternshipID: id,
				CoverLetter:  coverLetter,
			})
			if err != nil {
				if httpErr, ok := gateway.AsHTTPError(err); ok && httpErr.Conflict() {
					return fmt.Errorf("you have already applied to internship %d", id)
				}
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), app)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied to %s (application %d, %s)\n", applicationTitle(*app), app.ID, app.Status.Label())
			return nil
		},
	}
	apply.Flags().StringVar(&coverLetter, "cover-letter", "", "cover letter text")

	status := &cobra.Command{
		Use:   "status <application-id> <status>",
		Short: "Move an application to a new status (companies and admins)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := parseStatus(args[1])
			if err != nil {
				return err
			}
			app, err := a.client.Applications.UpdateStatus(cmd.Context(), id, st)
			if err != nil {
				return err
			}
			return a.printApplication(cmd.OutOrStdout(), app)
		},
	}

	withdraw := a.applicationByID("withdraw", "Withdraw a pending application (students)", func(cmd *cobra.Command, id int64) (*gateway.Application, error) {
		return a.client.Applications.Withdraw(cmd.Context(), id)
	})

	del := &cobra.Command{
		Use:   "delete <application-id>",
		Short: "Delete an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Applications.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted application %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, get, apply, status, withdraw, del)
	return cmd
}

func (a *App) applicationByID(use, short string, fetch func(*cobra.Command, int64) (*gateway.Application, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <application-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := fetch(cmd, id)
			if err != nil {
				return err
			}
			return a.printApplication(cmd.OutOrStdout(), app)
		},
	}
}

func (a *App) recommendationsCmd() *cobra.Command {
	var params gateway.RecommendationParams

	cmd := &cobra.Command{
		Use:     "recommendations",
		Aliases: []string{"recs"},
		Short:   "Internships that match your profile (students)",
		Long: `Rank open internships against your skills, major, GPA and location.

Examples:
  futureintern recommendations
  futureintern recommendations --limit 5 --min-score 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			recs, err := a.client.Recommendations.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.jsonOut() {
				return printJSON(out, recs)
			}
			if len(recs) == 0 {
				fmt.Fprintln(out, "No recommendations yet. Add skills to your profile to get matches.")
				return nil
			}

			t := newTable(out)
			printTableHeader(t, "SCORE", "ID", "TITLE", "COMPANY", "BREAKDOWN")
			for _, r := range recs {
				fmt.Fprintf(t, "%.0f%%\t%d\t%s\t%s\t%s\n",
					r.Score,
					r.Internship.ID,
					truncate(r.Internship.Title, 36),
					truncate(orDash(r.Internship.Company.Name), 24),
					formatBreakdown(r.Breakdown),
				)
			}
			return t.Flush()
		},
	}

	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum number of results (server default when 0)")
	cmd.Flags().Float64Var(&params.MinScore, "min-score", 0, "hide matches below this score (0-100)")
	return cmd
}

// formatBreakdown renders "skills=40 major=20" with stable key order.
func formatBreakdown(b map[string]float64) string {
	if len(b) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.0f", k, b[k])
	}
	return strings.Join(parts, " ")
}
