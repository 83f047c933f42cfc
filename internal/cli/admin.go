package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/futureintern/platform/internal/gateway"
	"github.com/spf13/cobra"
)

func (a *App) printUsers(w io.Writer, users []gateway.User) error {
	if a.jsonOut() {
		return printJSON(w, users)
	}
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found")
		return nil
	}

	t := newTable(w)
	printTableHeader(t, "ID", "NAME", "EMAIL", "ROLE", "VERIFIED", "JOINED")
	for _, u := range users {
		fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%t\t%s\n",
			u.ID,
			truncate(u.DisplayName(), 28),
			u.Email,
			u.Role,
			u.IsVerified,
			formatDate(u.CreatedAt),
		)
	}
	return t.Flush()
}

func (a *App) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator commands",
		// Every admin subcommand needs a token
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, args); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}

	var role string
	users := &cobra.Command{
		Use:   "users",
		Short: "List users, optionally by role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.Admin.Users(cmd.Context(), gateway.Role(role))
			if err != nil {
				return err
			}
			return a.printUsers(cmd.OutOrStdout(), list)
		},
	}
	users.Flags().StringVar(&role, "role", "", "student, company or admin")

	var nu gateway.NewUser
	var newRole string
	createUser := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account of any role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if nu.Name == "" || nu.Email == "" || nu.Password == "" {
				return fmt.Errorf("--name, --email and --password are required")
			}
			nu.Role = gateway.Role(newRole)
			user, err := a.client.Admin.CreateUser(cmd.Context(), nu)
			if err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (id %d)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}
	createUser.Flags().StringVar(&nu.Name, "name", "", "full name")
	createUser.Flags().StringVar(&nu.Email, "email", "", "email address")
	createUser.Flags().StringVar(&nu.Password, "password", "", "initial password")
	createUser.Flags().StringVar(&newRole, "role", string(gateway.RoleStudent), "student, company or admin")
	createUser.Flags().StringVar(&nu.CompanyName, "company-name", "", "company name (company accounts)")

	deleteUser := a.adminByID("delete-user", "Delete a user and everything they own", func(cmd *cobra.Command, id int64) error {
		if err := a.client.Admin.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
		return nil
	})

	internships := &cobra.Command{
		Use:   "internships",
		Short: "List every internship, including inactive ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.Admin.Internships(cmd.Context())
			if err != nil {
				return err
			}
			return a.printInternships(cmd.OutOrStdout(), list)
		},
	}

	deleteInternship := a.adminByID("delete-internship", "Delete any internship", func(cmd *cobra.Command, id int64) error {
		if err := a.client.Admin.DeleteInternship(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted internship %d\n", id)
		return nil
	})

	applications := &cobra.Command{
		Use:   "applications",
		Short: "List every application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.Admin.Applications(cmd.Context())
			if err != nil {
				return err
			}
			return a.printApplications(cmd.OutOrStdout(), list)
		},
	}

	setStatus := &cobra.Command{
		Use:   "set-status <application-id> <status>",
		Short: "Override an application's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := parseStatus(args[1])
			if err != nil {
				return err
			}
			app, err := a.client.Admin.UpdateApplicationStatus(cmd.Context(), id, st)
			if err != nil {
				return err
			}
			return a.printApplication(cmd.OutOrStdout(), app)
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Platform statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.client.Admin.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return a.printStats(cmd.OutOrStdout(), s)
		},
	}

	pending := &cobra.Command{
		Use:   "pending",
		Short: "List companies waiting for approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.Admin.PendingCompanies(cmd.Context())
			if err != nil {
				return err
			}
			return a.printUsers(cmd.OutOrStdout(), list)
		},
	}

	approve := a.adminByID("approve", "Approve a company account", func(cmd *cobra.Command, id int64) error {
		user, err := a.client.Admin.ApproveCompany(cmd.Context(), id)
		if err != nil {
			return err
		}
		if a.jsonOut() {
			return printJSON(cmd.OutOrStdout(), user)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Approved %s\n", user.DisplayName())
		return nil
	})

	importCmd := &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Bulk import internships from an Excel workbook",
		Long: `Import internships from the first sheet of an .xlsx workbook. The header
row names the columns: Title, Company Name, Description, Requirements,
Location, Duration, Type, Stipend, Skills and Major. Only Title is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, closer, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			result, err := a.client.Admin.ImportInternships(cmd.Context(), file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.jsonOut() {
				return printJSON(out, result)
			}
			fmt.Fprintf(out, "Created %d, skipped %d\n", result.Created, result.Skipped)
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  %s\n", e)
			}
			return nil
		},
	}

	cmd.AddCommand(users, createUser, deleteUser, internships, deleteInternship,
		applications, setStatus, stats, pending, approve, importCmd)
	return cmd
}

func (a *App) adminByID(use, short string, run func(*cobra.Command, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, id)
		},
	}
}

func (a *App) printStats(w io.Writer, s *gateway.Stats) error {
	if a.jsonOut() {
		return printJSON(w, s)
	}

	t := newTable(w)
	fmt.Fprintf(t, "Users:\t%d\t(%d students, %d companies, %d admins)\n",
		s.Users.Total, s.Users.Students, s.Users.Companies, s.Users.Admins)
	fmt.Fprintf(t, "Internships:\t%d\t(%d active)\n", s.Internships.Total, s.Internships.Active)
	fmt.Fprintf(t, "Applications:\t%d\t\n", s.Applications.Total)

	statuses := make([]string, 0, len(s.Applications.ByStatus))
	for st := range s.Applications.ByStatus {
		statuses = append(statuses, st)
	}
	sort.Strings(statuses)
	for _, st := range statuses {
		fmt.Fprintf(t, "  %s:\t%d\t\n", st, s.Applications.ByStatus[st])
	}
	if err := t.Flush(); err != nil {
		return err
	}

	ranked := func(title string, entries []gateway.RankedEntry) {
		if len(entries) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s\n", title)
		for i, e := range entries {
			fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, e.Name, e.Count)
		}
	}
	ranked("Top companies by internships:", s.TopCompanies)
	ranked("Top students by applications:", s.TopStudents)
	return nil
}
