package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/futureintern/platform/internal/gateway"
	"github.com/spf13/cobra"
)

// prompt reads one line from stdin when value is empty. The reader is shared
// so consecutive prompts do not lose buffered input.
func (a *App) prompt(cmd *cobra.Command, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	if a.stdin == nil {
		a.stdin = bufio.NewReader(cmd.InOrStdin())
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func (a *App) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Long: `Sign in with email and password. The token is kept in the session
file so later commands are authenticated.

Examples:
  futureintern login --email you@example.com
  echo "$PASSWORD" | futureintern login --email you@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if email, err = a.prompt(cmd, "Email", email); err != nil {
				return err
			}
			if password, err = a.prompt(cmd, "Password", password); err != nil {
				return err
			}

			resp, err := a.client.Auth.Login(cmd.Context(), gateway.Credentials{
				Email:    strings.TrimSpace(email),
				Password: password,
			})
			if err != nil {
				return err
			}

			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			if resp.User != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", resp.User.DisplayName(), resp.User.Role)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.client.Auth.Logout()
		},
	}
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			user, err := a.client.Auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.printUser(cmd.OutOrStdout(), user)
		},
	}
}

func (a *App) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.client.Auth.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session refreshed")
			return nil
		},
	}
}

func (a *App) registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student or company account",
	}
	cmd.AddCommand(a.registerStudentCmd(), a.registerCompanyCmd())
	return cmd
}

func (a *App) registerStudentCmd() *cobra.Command {
	var (
		reg    gateway.StudentRegistration
		gpa    float64
		skills string
		cvPath string
	)

	cmd := &cobra.Command{
		Use:   "student",
		Short: "Register a student account, sign in and upload a CV",
		Long: `Register a student account. On success the CLI signs in with the same
credentials and, when --cv is given, uploads the CV.

Examples:
  futureintern register student --name "Mona Adel" --email mona@example.com \
    --password 'S3cure!pass' --university Cairo --major "Computer Science" \
    --skills go,sql --cv ./cv.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reg.Name == "" || reg.Email == "" || reg.Password == "" {
				return fmt.Errorf("--name, --email and --password are required")
			}
			if cmd.Flags().Changed("gpa") {
				reg.GPA = &gpa
			}
			reg.Skills = gateway.SplitList(skills)

			var cv *gateway.Upload
			if cvPath != "" {
				upload, closer, err := openUpload(cvPath)
				if err != nil {
					return err
				}
				defer closer.Close()
				cv = &upload
			}

			result, err := a.client.Auth.RegisterStudent(cmd.Context(), reg, cv)
			if err != nil {
				return err
			}

			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), registrationView(result))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Registered %s <%s>\n", result.User.DisplayName(), result.User.Email)
			if !result.LoggedIn {
				fmt.Fprintf(out, "Automatic sign-in failed (%v), please log in manually\n", result.LoginErr)
				return nil
			}
			fmt.Fprintln(out, "Logged in")
			if cv != nil {
				if result.CVUploaded {
					fmt.Fprintln(out, "CV uploaded")
				} else {
					fmt.Fprintf(out, "CV upload failed (%v), retry with `futureintern cv upload`\n", result.CVErr)
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&reg.Name, "name", "", "full name")
	f.StringVar(&reg.Email, "email", "", "email address")
	f.StringVar(&reg.Password, "password", "", "password")
	f.StringVar(&reg.University, "university", "", "university")
	f.StringVar(&reg.Major, "major", "", "major")
	f.Float64Var(&gpa, "gpa", 0, "GPA on a 0-4 scale")
	f.StringVar(&skills, "skills", "", "comma separated skills")
	f.StringVar(&reg.Interests, "interests", "", "interests")
	f.StringVar(&reg.Location, "location", "", "city")
	f.StringVar(&reg.Phone, "phone", "", "phone number")
	f.StringVar(&cvPath, "cv", "", "CV file to upload after registering (pdf, doc, docx)")
	return cmd
}

type registrationJSON struct {
	User       gateway.User `json:"user"`
	LoggedIn   bool         `json:"logged_in"`
	LoginError string       `json:"login_error,omitempty"`
	CVUploaded bool         `json:"cv_uploaded"`
	CVError    string       `json:"cv_error,omitempty"`
}

func registrationView(r *gateway.RegistrationResult) registrationJSON {
	v := registrationJSON{User: r.User, LoggedIn: r.LoggedIn, CVUploaded: r.CVUploaded}
	if r.LoginErr != nil {
		v.LoginError = r.LoginErr.Error()
	}
	if r.CVErr != nil {
		v.CVError = r.CVErr.Error()
	}
	return v
}

func (a *App) registerCompanyCmd() *cobra.Command {
	var reg gateway.CompanyRegistration

	cmd := &cobra.Command{
		Use:   "company",
		Short: "Register a company account (requires admin approval)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reg.Name == "" || reg.Email == "" || reg.Password == "" || reg.CompanyName == "" {
				return fmt.Errorf("--name, --email, --password and --company-name are required")
			}
			user, err := a.client.Auth.RegisterCompany(cmd.Context(), reg)
			if err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. An administrator must approve the account before it can post internships.\n", user.DisplayName())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&reg.Name, "name", "", "contact name")
	f.StringVar(&reg.Email, "email", "", "email address")
	f.StringVar(&reg.Password, "password", "", "password")
	f.StringVar(&reg.CompanyName, "company-name", "", "company name")
	f.StringVar(&reg.CompanyDescription, "description", "", "company description")
	f.StringVar(&reg.CompanyWebsite, "website", "", "company website")
	f.StringVar(&reg.CompanyLocation, "location", "", "company location")
	f.StringVar(&reg.Industry, "industry", "", "industry")
	return cmd
}

func (a *App) passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Recover a forgotten password",
	}

	forgot := &cobra.Command{
		Use:   "forgot <email>",
		Short: "Email a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Auth.ForgotPassword(cmd.Context(), strings.TrimSpace(args[0])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "If an account exists for that email, a reset link has been sent")
			return nil
		},
	}

	var newPassword string
	reset := &cobra.Command{
		Use:   "reset <token>",
		Short: "Set a new password with the emailed token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.prompt(cmd, "New password", newPassword)
			if err != nil {
				return err
			}
			if err := a.client.Auth.ResetPassword(cmd.Context(), args[0], pw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password has been reset, you can now log in")
			return nil
		},
	}
	reset.Flags().StringVar(&newPassword, "password", "", "new password (prompted when omitted)")

	cmd.AddCommand(forgot, reset)
	return cmd
}
