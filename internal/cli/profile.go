package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/futureintern/platform/internal/gateway"
	"github.com/spf13/cobra"
)

func (a *App) printUser(w io.Writer, u *gateway.User) error {
	if a.jsonOut() {
		return printJSON(w, u)
	}

	t := newTable(w)
	row := func(k, v string) { fmt.Fprintf(t, "%s:\t%s\n", k, orDash(v)) }
	row("ID", fmt.Sprint(u.ID))
	row("Name", u.DisplayName())
	row("Email", u.Email)
	row("Role", string(u.Role))
	row("Location", u.Location)
	row("Phone", u.Phone)

	switch u.Role {
	case gateway.RoleStudent:
		row("University", u.University)
		row("Major", u.Major)
		row("GPA", formatGPA(u.GPA))
		row("Skills", strings.Join(u.Skills, ", "))
		row("Interests", u.Interests)
		row("CV", u.ResumeURL)
	case gateway.RoleCompany:
		row("Company", u.CompanyName)
		row("Industry", u.Industry)
		row("Website", u.CompanyWebsite)
		row("Logo", u.CompanyLogo)
		row("Approved", fmt.Sprint(u.IsVerified))
	}
	if u.Bio != "" {
		row("Bio", truncate(u.Bio, 80))
	}
	return t.Flush()
}

func (a *App) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}

	get := &cobra.Command{
		Use:   "get [user-id]",
		Short: "Show your profile, or another user's by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			var (
				user *gateway.User
				err  error
			)
			if len(args) == 1 {
				id, perr := parseID(args[0])
				if perr != nil {
					return perr
				}
				user, err = a.client.Users.Get(cmd.Context(), id)
			} else {
				user, err = a.client.Users.Profile(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.printUser(cmd.OutOrStdout(), user)
		},
	}

	cmd.AddCommand(get, a.profileUpdateCmd())
	return cmd
}

// stringFlags are the profile fields editable from the command line, keyed by flag name.
var stringFlags = []struct {
	name  string
	usage string
	field func(*gateway.ProfileUpdate) **string
}{
	{"name", "full name", func(u *gateway.ProfileUpdate) **string { return &u.Name }},
	{"bio", "short bio", func(u *gateway.ProfileUpdate) **string { return &u.Bio }},
	{"location", "city", func(u *gateway.ProfileUpdate) **string { return &u.Location }},
	{"phone", "phone number", func(u *gateway.ProfileUpdate) **string { return &u.Phone }},
	{"university", "university (students)", func(u *gateway.ProfileUpdate) **string { return &u.University }},
	{"major", "major (students)", func(u *gateway.ProfileUpdate) **string { return &u.Major }},
	{"interests", "interests (students)", func(u *gateway.ProfileUpdate) **string { return &u.Interests }},
	{"company-name", "company name (companies)", func(u *gateway.ProfileUpdate) **string { return &u.CompanyName }},
	{"description", "company description (companies)", func(u *gateway.ProfileUpdate) **string { return &u.CompanyDescription }},
	{"website", "company website (companies)", func(u *gateway.ProfileUpdate) **string { return &u.CompanyWebsite }},
	{"company-location", "company location (companies)", func(u *gateway.ProfileUpdate) **string { return &u.CompanyLocation }},
	{"industry", "industry (companies)", func(u *gateway.ProfileUpdate) **string { return &u.Industry }},
}

func (a *App) profileUpdateCmd() *cobra.Command {
	var (
		gpa    float64
		skills string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; only the flags you pass are sent",
		Long: `Change profile fields. Fields without a flag are left alone.

Examples:
  futureintern profile update --bio "Backend developer" --skills go,postgres
  futureintern profile update --gpa 3.6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}

			var update gateway.ProfileUpdate
			changed := 0
			for _, sf := range stringFlags {
				if !cmd.Flags().Changed(sf.name) {
					continue
				}
				v, _ := cmd.Flags().GetString(sf.name)
				*sf.field(&update) = &v
				changed++
			}
			if cmd.Flags().Changed("gpa") {
				update.GPA = &gpa
				changed++
			}
			if cmd.Flags().Changed("skills") {
				update.Skills = gateway.SplitList(skills)
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			user, err := a.client.Users.UpdateProfile(cmd.Context(), update)
			if err != nil {
				return err
			}
			return a.printUser(cmd.OutOrStdout(), user)
		},
	}

	for _, sf := range stringFlags {
		cmd.Flags().String(sf.name, "", sf.usage)
	}
	cmd.Flags().Float64Var(&gpa, "gpa", 0, "GPA on a 0-4 scale (students)")
	cmd.Flags().StringVar(&skills, "skills", "", "comma separated skills, replaces the current list (students)")
	return cmd
}

// fileCmd builds the upload/delete pair shared by `cv` and `logo`.
func (a *App) fileCmd(use, short string,
	upload func(*App, *cobra.Command, gateway.Upload) (*gateway.User, error),
	remove func(*App, *cobra.Command) error,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	up := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a new " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			file, closer, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			user, err := upload(a, cmd, file)
			if err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", file.Filename)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the current " + use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := remove(a, cmd); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", use)
			return nil
		},
	}

	cmd.AddCommand(up, del)
	return cmd
}

func (a *App) cvCmd() *cobra.Command {
	return a.fileCmd("cv", "Manage your CV (students)",
		func(a *App, cmd *cobra.Command, f gateway.Upload) (*gateway.User, error) {
			return a.client.Users.UploadCV(cmd.Context(), f)
		},
		func(a *App, cmd *cobra.Command) error {
			return a.client.Users.DeleteCV(cmd.Context())
		},
	)
}

func (a *App) logoCmd() *cobra.Command {
	return a.fileCmd("logo", "Manage your company logo (companies)",
		func(a *App, cmd *cobra.Command, f gateway.Upload) (*gateway.User, error) {
			return a.client.Users.UploadLogo(cmd.Context(), f)
		},
		func(a *App, cmd *cobra.Command) error {
			return a.client.Users.DeleteLogo(cmd.Context())
		},
	)
}

func (a *App) savedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage bookmarked internships (students)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List bookmarked internships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			items, err := a.client.Users.SavedInternships(cmd.Context())
			if err != nil {
				return err
			}
			return a.printInternships(cmd.OutOrStdout(), items)
		},
	}

	withID := func(use, short string, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <internship-id>",
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
				return run(cmd, id)
			},
		}
	}

	add := withID("add", "Bookmark an internship", func(cmd *cobra.Command, id int64) error {
		if err := a.client.Users.SaveInternship(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved internship %d\n", id)
		return nil
	})
	remove := withID("remove", "Remove a bookmark", func(cmd *cobra.Command, id int64) error {
		if err := a.client.Users.UnsaveInternship(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed internship %d from saved\n", id)
		return nil
	})
	check := withID("check", "Tell whether an internship is bookmarked", func(cmd *cobra.Command, id int64) error {
		saved, err := a.client.Users.IsSaved(cmd.Context(), id)
		if err != nil {
			return err
		}
		if a.jsonOut() {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"internship_id": id, "is_saved": saved})
		}
		fmt.Fprintln(cmd.OutOrStdout(), saved)
		return nil
	})

	cmd.AddCommand(list, add, remove, check)
	return cmd
}
