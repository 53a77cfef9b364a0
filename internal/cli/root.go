package cli

import (
	"os"
	"strings"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/cache"
	"dormshare-cli/internal/config"
	"dormshare-cli/internal/session"
	"dormshare-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	ConfigDir  string
	PrettyJSON bool

	client   *api.Client
	sessions session.Store
	cache    cache.Store
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dormshare",
		Short:        "Dormshare rental marketplace CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  dormshare

  # Scriptable commands
  dormshare items list --search guitar --category Others
  dormshare items rent item-id --days 3
  dormshare my rentals
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("DORMSHARE_API_URL", ""), "Marketplace API base URL (default: config)")
	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("DORMSHARE_CONFIG_DIR", ""), "Directory for session + cache (default: user config dir)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newMyCmd(app))
	cmd.AddCommand(newProfileCmd(app))

	return cmd
}

// setup resolves config, opens the session store and builds an API client
// carrying any stored token.
func (a *App) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.APIURL == "" {
		a.APIURL = cfg.APIBaseURL
	}
	if a.ConfigDir == "" {
		a.ConfigDir = cfg.ConfigDir
	}

	a.sessions = session.Store{Dir: a.ConfigDir}
	a.cache = cache.Store{Dir: a.ConfigDir}
	a.client = api.New(a.APIURL)

	sess, err := a.sessions.Load()
	if err != nil {
		return err
	}
	a.client.Token = sess.Token
	return nil
}

func runTUI(app *App) error {
	if err := app.setup(); err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Client:   app.client,
		Sessions: app.sessions,
		Cache:    app.cache,
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
