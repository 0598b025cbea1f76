package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"tcs/internal/config"
	"tcs/internal/launch"
	"tcs/internal/logging"
	"tcs/internal/menu"
	"tcs/internal/metric"
	"tcs/internal/model"
	"tcs/internal/tui"
	"tcs/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"golang.org/x/sync/errgroup"
)

const appName = "tcs"

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "tjeb",
		Repository: "tcs",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not check for updates: %v\n", err)
		return
	}

	if res.Outdated {
		fmt.Printf("A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else {
		fmt.Printf("You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tcs [options]\n\n")
		fmt.Fprintf(os.Stderr, "tcs is a full-screen menu launcher for arcade cabinets.\n")
		fmt.Fprintf(os.Stderr, "Every section of the config file becomes a button that runs a command.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tcs --init                 # Write a template tcs.conf\n")
		fmt.Fprintf(os.Stderr, "  tcs -c /etc/arcade.conf    # Start the launcher\n")
		fmt.Fprintf(os.Stderr, "  tcs -l :9100               # Also serve the menu and metrics over HTTP\n")
	}

	initFlag := pflag.Bool("init", false, "Initialize a configuration file at the --config path")
	configFlag := pflag.StringP("config", "c", config.DefaultFile, "Use the given configuration file")
	listenFlag := pflag.StringP("listen", "l", "", "Serve the menu tree, health and metrics on this address (e.g. :9100)")
	logFileFlag := pflag.String("log-file", "", "Append logs to this file (logs are discarded in the UI otherwise)")
	logLevelFlag := pflag.String("log-level", "", "Log level: debug, info, warn, error (default $"+logging.EnvVarLogLevel+" or info)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest release")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("tcs version %s\n", model.Version)
		return
	}

	logging.SetupConsole(appName, model.Version, *logLevelFlag)

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if *initFlag {
		runInitMode(*configFlag)
		return
	}

	os.Exit(runMenuMode(*configFlag, *listenFlag, *logFileFlag, *logLevelFlag))
}

func runInitMode(path string) {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.WriteTemplate(path, cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s written\n", path)
}

func runMenuMode(path, listen, logFile, logLevel string) int {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Config file %s not found, please use --init to generate one\n", path)
			return 1
		}
		if errs := config.ConfigErrors(err); len(errs) > 0 {
			fmt.Fprintf(os.Stderr, "Error in config file %s:\n", path)
			for _, ce := range errs {
				fmt.Fprintf(os.Stderr, "  %v\n", ce)
			}
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	tree, err := menu.Build(cfg.Actions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building menu: %v\n", err)
		return 1
	}

	// The UI owns the terminal from here on.
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := logging.OpenFile(logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logging.Setup(logOut, appName, model.Version, logLevel)

	reg := prometheus.NewRegistry()
	launcher := launch.New(launch.WithCounter(metric.NewLaunchCounter(reg)))
	nav := menu.NewNavigator(tree, launcher)

	if err := run(nav, cfg.Global.Title, launcher, listen, reg); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		return 1
	}
	return 0
}

// run drives the UI until it quits. With listen set, the HTTP surface runs
// alongside and is shut down when the UI exits.
func run(nav *menu.Navigator, title string, launcher *launch.Launcher, listen string, reg *prometheus.Registry) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	uiCtx, uiDone := context.WithCancel(gCtx)

	if listen != "" {
		srv := web.New(listen, nav.Tree(), web.WithMetrics(reg))
		g.Go(func() error {
			return srv.Serve(uiCtx)
		})
	}

	g.Go(func() error {
		defer uiDone()
		m := tui.InitialModel(nav, title, launcher)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(uiCtx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		log.Info().Msg("launcher stopped")
		return nil
	})

	return g.Wait()
}
