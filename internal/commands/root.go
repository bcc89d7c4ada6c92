package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/stahnma/gh-search/internal/config"
	ghub "github.com/stahnma/gh-search/internal/github"
	"github.com/stahnma/gh-search/internal/search"
	"github.com/stahnma/gh-search/internal/tui"
)

var errNotTerminal = errors.New("interactive mode needs a terminal; use 'gh-search search <query>' instead")

// App holds shared application state.
type App struct {
	Config   config.Config
	Viper    *viper.Viper
	Searcher ghub.Searcher
	GitSHA   string
	GitDirty string

	isTerminal func() bool
	runUI      func(ctx context.Context, ctrl tui.Controller, token string) error
	now        func() time.Time
}

// NewApp creates a new App reading configuration through v.
func NewApp(v *viper.Viper, gitSHA, gitDirty string) *App {
	return &App{
		Viper:      v,
		GitSHA:     gitSHA,
		GitDirty:   gitDirty,
		isTerminal: stdioIsTerminal,
		runUI:      tui.Run,
		now:        time.Now,
	}
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// searcher returns the configured Searcher, creating the GitHub transport
// on first use.
func (a *App) searcher(logger *log.Logger) ghub.Searcher {
	if a.Searcher == nil {
		a.Searcher = ghub.NewTransport(logger)
	}
	return a.Searcher
}

// NewRootCommand creates the root cobra command with all subcommands.
func (a *App) NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gh-search",
		Short: "Search GitHub repositories from the terminal.",
		Long: `Search GitHub repositories from the terminal.

Without a subcommand an interactive search screen opens. Results update as
you type, after a short pause.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.Viper)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			a.Config = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	flags := rootCmd.PersistentFlags()
	flags.String("token", "", "GitHub personal access token (default $GITHUB_TOKEN)")
	flags.Bool("debug", false, "Enable debug logging (default $DEBUG)")
	flags.Duration("debounce", config.DefaultDebounce, "Pause after typing before a search starts (default $GH_SEARCH_DEBOUNCE)")

	for key, name := range map[string]string{
		config.KeyToken:    "token",
		config.KeyDebug:    "debug",
		config.KeyDebounce: "debounce",
	} {
		if err := a.Viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding --%s: %v", name, err))
		}
	}

	rootCmd.AddCommand(a.newSearchCommand())
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}

func (a *App) runInteractive(cmd *cobra.Command) error {
	if !a.isTerminal() {
		return errNotTerminal
	}

	logger, closeLog, err := a.uiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl := search.New(a.searcher(logger), search.Options{
		Quiet:   a.Config.Debounce,
		PerPage: a.Config.PerPage,
		Logger:  logger,
	})
	defer ctrl.Close()

	logger.Debug("starting interactive search", "debounce", a.Config.Debounce, "per_page", a.Config.PerPage)
	return a.runUI(cmd.Context(), ctrl, a.Config.GitHubToken)
}
