package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/folio/pkg/config"
	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
	"github.com/vanderheijden86/folio/pkg/model"
	"github.com/vanderheijden86/folio/pkg/seed"
	"github.com/vanderheijden86/folio/pkg/session"
	"github.com/vanderheijden86/folio/pkg/ui"
	"github.com/vanderheijden86/folio/pkg/version"
	"github.com/vanderheijden86/folio/pkg/watcher"
	"github.com/vanderheijden86/folio/pkg/workspace"
)

// seedList collects repeated --seed flags.
type seedList []string

func (s *seedList) String() string { return strings.Join(*s, ",") }

func (s *seedList) Set(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("empty seed path")
	}
	*s = append(*s, v)
	return nil
}

func main() {
	var seeds seedList
	flag.Var(&seeds, "seed", "Load the tree from a YAML or JSON seed file (repeatable)")
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file (default: $XDG_CONFIG_HOME/folio/config.yaml)")
	loginFlag := flag.Bool("login", false, "Log in and exit")
	logoutFlag := flag.Bool("logout", false, "Log out and exit")
	userFlag := flag.String("user", "", "User name for --login (skips the form)")
	rememberFlag := flag.Bool("remember", false, "Keep the login across reboots (with --login --user)")
	queryFlag := flag.String("query", "", "Start with this search query")
	themeFlag := flag.String("theme", "", "Override the theme: system, dark or light")
	dumpFlag := flag.Bool("dump", false, "Print the tree as JSON and exit")
	statsFlag := flag.Bool("stats", false, "Print operation timings on exit")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: folio [options]")
		fmt.Println("\nA terminal file browser over an in-memory tree.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("folio %s\n", version.Version)
		os.Exit(0)
	}

	closeDebug, err := debug.OpenFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer closeDebug()

	gate := session.DefaultGate()

	if *logoutFlag {
		if err := gate.Logout(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Logged out.")
		os.Exit(0)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}
	cfg, cfgErr := config.LoadFrom(cfgPath)
	if cfgErr != nil {
		// Non-fatal: LoadFrom returned defaults.
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", cfgErr)
	}
	debug.Dump("config", cfg)

	if *loginFlag {
		user, err := login(gate, *userFlag, *rememberFlag || cfg.Session.Remember)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Logged in as %s.\n", user)
		os.Exit(0)
	}

	if *themeFlag != "" {
		if !slices.Contains(config.Themes, *themeFlag) {
			fmt.Fprintf(os.Stderr, "Error: unknown theme %q (want one of %s)\n", *themeFlag, strings.Join(config.Themes, ", "))
			os.Exit(2)
		}
		cfg.UI.Theme = *themeFlag
	}

	if len(seeds) == 0 {
		seeds = cfg.Seeds
	}
	forest, err := loadForest(context.Background(), seeds, log.New(os.Stderr, "", 0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading seeds: %v\n", err)
		os.Exit(1)
	}

	if *dumpFlag {
		if err := seed.WriteJSON(os.Stdout, forest); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !gate.Authenticated() {
		fmt.Fprintln(os.Stderr, "Not logged in. Run 'folio --login' first.")
		os.Exit(1)
	}

	ws := workspace.New(forest, nil, nil)
	ws.SetQuery(*queryFlag)

	opts := []ui.Option{
		ui.WithGate(gate),
		ui.WithRenderer(lipgloss.DefaultRenderer(), lipgloss.HasDarkBackground()),
		ui.WithConfigSaver(func(c config.Config) error { return config.SaveTo(c, cfgPath) }),
	}
	w, err := watcher.NewWatcher(cfgPath,
		watcher.WithOnError(func(err error) { debug.Log("config watcher: %v", err) }),
	)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		debug.Log("config watcher disabled: %v", err)
	} else {
		defer w.Stop()
		opts = append(opts, ui.WithWatcher(w, cfgPath))
	}

	m, err := runTUIProgram(ui.NewModel(ws, cfg, opts...))
	if *statsFlag {
		_ = metrics.WriteSummary(os.Stderr)
	}
	if err != nil {
		fmt.Printf("Error running folio: %v\n", err)
		os.Exit(1)
	}
	if m.LoggedOut() {
		fmt.Println("Logged out.")
	}
}

// login records a session for user, or runs the login form when user is
// empty. It returns the name that was recorded.
func login(gate *session.Gate, user string, remember bool) (string, error) {
	if strings.TrimSpace(user) != "" {
		return strings.TrimSpace(user), gate.Login(user, remember)
	}
	c, err := gate.PromptLogin(remember)
	return strings.TrimSpace(c.User), err
}

// loadForest builds the tree from the seed files, or the built-in sample
// when none are given.
func loadForest(ctx context.Context, paths []string, logger *log.Logger) (*model.Forest, error) {
	if len(paths) == 0 {
		return seed.Default(), nil
	}
	loader := workspace.NewSeedLoader(paths...)
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	loader.SetLogger(logger)
	f, results, err := loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	s := workspace.Summarize(results)
	if s.FailedFiles > 0 {
		logger.Printf("Loaded %d of %d seed files (%d entries)", s.LoadedFiles, s.TotalFiles, s.TotalEntries)
	}
	return f, nil
}

func runTUIProgram(m ui.Model) (ui.Model, error) {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set FOLIO_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("FOLIO_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	final, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		err = nil
	}
	if fm, ok := final.(ui.Model); ok {
		m = fm
	}
	return m, err
}
