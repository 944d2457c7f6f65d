package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui"
	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/messages"
	"github.com/servilink/servilink-cli/internal/logger"
)

// SessionWatcher calls onChange whenever the stored session changes on
// disk, until ctx is cancelled.
type SessionWatcher func(ctx context.Context, onChange func()) (stop func() error, err error)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// Watch is optional. When set, logins and logouts made by other
	// processes are picked up while the TUI runs.
	Watch SessionWatcher
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for ServiLink.

Browse and filter services, open a service to hire it, and follow your jobs
through acceptance, completion and review with the keyboard.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Select
  [ / ]    - Previous / next page
  Esc      - Back
  ?        - Help
  q        - Quit (from the menu)`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Session:  sessionService,
		Auth:     authService,
		Search:   searchService,
		Catalog:  catalogService,
		Jobs:     jobService,
		Profile:  profileService,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if tuiConfig != nil && tuiConfig.Watch != nil {
		stop, err := tuiConfig.Watch(ctx, func() {
			if err := sessionService.Rehydrate(ctx); err != nil {
				logger.Warn("reload session: %v", err)
				return
			}
			p.Send(messages.SessionChanged{State: sessionService.Current()})
		})
		if err != nil {
			logger.Warn("session changes from other terminals will not be seen: %v", err)
		} else {
			defer func() {
				if err := stop(); err != nil {
					logger.Debug("stop session watcher: %v", err)
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
