package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomfield/quickpick/internal/delegate/commands"
	"github.com/atomfield/quickpick/internal/delegate/files"
	"github.com/atomfield/quickpick/internal/delegate/recent"
	"github.com/atomfield/quickpick/internal/history"
	"github.com/atomfield/quickpick/internal/index"
	"github.com/atomfield/quickpick/internal/logging"
	"github.com/atomfield/quickpick/internal/picker"
	"github.com/atomfield/quickpick/internal/ui"
)

// Picker modes selectable via configuration.
const (
	ModeFiles    = "files"
	ModeCommands = "commands"
	ModeRecent   = "recent"
)

// Config describes user-provided application options.
type Config struct {
	Root          string
	Mode          string
	Width         int
	Height        int
	ShowFooter    bool
	IncludeHidden bool
	HistoryFile   string
}

// resulter is implemented by delegates that produce a final pick.
type resulter interface {
	Result() (string, bool)
}

// Run bootstraps and executes the Bubble Tea program. When the picker
// confirms an entry, the pick is written to stdout for the caller.
func Run(cfg Config) error {
	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	store := openHistory(cfg.HistoryFile)
	if store != nil {
		defer store.Close()
	}

	var delegate picker.Delegate
	var events <-chan index.Event
	switch cfg.Mode {
	case ModeFiles:
		ix, err := index.New(root, cfg.IncludeHidden)
		if err != nil {
			return fmt.Errorf("index %s: %w", root, err)
		}
		defer ix.Stop()
		delegate = files.New(ix, store)
		events = ix.Events()
	case ModeCommands:
		delegate = commands.New(defaultRegistry(store))
	case ModeRecent:
		if store == nil {
			return errors.New("recent mode requires a usable history database")
		}
		delegate = recent.New(store)
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	p := picker.New(delegate, cfg.Width, cfg.Height, cfg.ShowFooter)
	model := ui.New(p, events)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	p.Close()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}

	if r, ok := delegate.(resulter); ok {
		if pick, confirmed := r.Result(); confirmed {
			fmt.Println(pick)
		}
	}
	return nil
}

// resolveRoot makes the index root absolute, defaulting to the working
// directory.
func resolveRoot(root string) (string, error) {
	if root == "" {
		return os.Getwd()
	}
	return filepath.Abs(root)
}

// openHistory opens the pick-history store, falling back to running
// without one when it cannot be opened. A missing history never blocks
// the picker itself.
func openHistory(path string) *history.Store {
	if path == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			logging.Error(err)
			return nil
		}
		path = filepath.Join(cache, "quickpick", "history.db")
	}
	store, err := history.Open(path)
	if err != nil {
		logging.Error(err)
		return nil
	}
	return store
}

// defaultRegistry builds the command palette entries.
func defaultRegistry(store *history.Store) *commands.Registry {
	return commands.NewRegistry(
		commands.Command{
			ID:     "history.clear",
			Title:  "history: clear picks",
			Detail: "forget every remembered pick",
			Run: func() tea.Msg {
				if store == nil {
					return picker.StatusMsg{Text: "no history database"}
				}
				if err := store.Clear(); err != nil {
					logging.Error(err)
					return picker.StatusMsg{Text: "failed to clear history"}
				}
				return picker.StatusMsg{Text: "history cleared"}
			},
		},
		commands.Command{
			ID:     "trace.enable",
			Title:  "tracing: enable",
			Detail: "write JSON trace events to the log file",
			Run: func() tea.Msg {
				logging.SetTraceEnabled(true)
				return picker.StatusMsg{Text: "tracing enabled"}
			},
		},
		commands.Command{
			ID:     "trace.disable",
			Title:  "tracing: disable",
			Detail: "stop writing JSON trace events",
			Run: func() tea.Msg {
				logging.SetTraceEnabled(false)
				return picker.StatusMsg{Text: "tracing disabled"}
			},
		},
		commands.Command{
			ID:     "quit",
			Title:  "quit",
			Detail: "close the picker without choosing",
			Run:    tea.Quit,
		},
	)
}
