// Package cli implements the futureintern command line client on top of the
// gateway client, the session store and the chat widget.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/futureintern/platform/internal/gateway"
	"github.com/futureintern/platform/internal/pkg/logger"
	"github.com/futureintern/platform/internal/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// App carries the state shared by every command of one invocation.
type App struct {
	configFile string
	output     string
	debug      bool

	settings *Settings
	log      zerolog.Logger
	store    *session.Store
	client   *gateway.Client
	stdin    *bufio.Reader
}

// NewRootCmd builds a fresh command tree. Each call has its own state, so
// tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "futureintern",
		Short: "Command line client for the FutureIntern platform",
		Long: `futureintern talks to the FutureIntern API: browse and apply for
internships, manage your profile, and chat with the assistant.

Examples:
  futureintern login --email you@example.com
  futureintern internships list --search golang --location Cairo
  futureintern applications apply 42 --cover-letter "I would love to join"
  futureintern chat`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "config file (default ~/.futureintern/config.yaml)")
	flags.String("api-url", "", "API base URL (default "+gateway.DefaultBaseURL+")")
	flags.String("session-file", "", "where the login token is kept (default ~/.futureintern/session.json)")
	flags.Duration("timeout", 0, "request timeout (default 30s)")
	flags.StringVarP(&app.output, "output", "o", "table", "output format (table, json)")
	flags.BoolVar(&app.debug, "debug", false, "log requests and state changes to stderr")

	root.AddCommand(
		app.loginCmd(),
		app.logoutCmd(),
		app.whoamiCmd(),
		app.refreshCmd(),
		app.registerCmd(),
		app.passwordCmd(),
		app.profileCmd(),
		app.cvCmd(),
		app.logoCmd(),
		app.savedCmd(),
		app.internshipsCmd(),
		app.applicationsCmd(),
		app.recommendationsCmd(),
		app.adminCmd(),
		app.chatCmd(),
	)

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.output != "table" && a.output != "json" {
		return fmt.Errorf("unknown output format %q (use table or json)", a.output)
	}

	v := newViper(a.configFile)
	flags := cmd.Root().PersistentFlags()
	_ = v.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = v.BindPFlag("session_file", flags.Lookup("session-file"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))

	settings, err := loadSettings(v, a.configFile != "")
	if err != nil {
		return err
	}
	a.settings = settings

	level := logger.WarnLevel
	if a.debug {
		level = logger.DebugLevel
	}
	a.log = logger.New(logger.Config{Level: level, Pretty: true, Output: cmd.ErrOrStderr()})

	errOut := cmd.ErrOrStderr()
	a.store = session.NewStore(
		session.NewFileBackend(settings.SessionFile),
		session.WithLogger(a.log.With().Str("component", "session").Logger()),
		session.WithLogoutRedirect(func() {
			fmt.Fprintln(errOut, "Signed out. Run `futureintern login` to sign in again.")
		}),
	)
	a.store.Subscribe(func(ev session.Event) {
		a.log.Debug().Bool("authenticated", ev.Authenticated).Msg("session changed")
	})

	a.client = gateway.NewClient(a.store,
		gateway.WithBaseURL(settings.APIURL),
		gateway.WithTimeout(settings.Timeout),
		gateway.WithUserAgent("futureintern-cli/"+Version),
		gateway.WithLogger(a.log.With().Str("component", "gateway").Logger()),
	)

	a.log.Debug().
		Str("apiURL", settings.APIURL).
		Str("sessionFile", settings.SessionFile).
		Msg("CLI configured")
	return nil
}

func (a *App) jsonOut() bool {
	return a.output == "json"
}

// requireLogin fails fast when no token is stored.
func (a *App) requireLogin() error {
	if !a.store.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

// openUpload opens a local file for a multipart upload. The caller closes it.
func openUpload(path string) (gateway.Upload, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return gateway.Upload{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return gateway.Upload{Filename: filepath.Base(path), Content: f}, f, nil
}
