package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/tischda/chordkeys"
)

// https://goreleaser.com/cookbooks/using-main.version/
var (
	name    = "chordkeys"
	version string
	date    string
	commit  string
)

// flags
type options struct {
	path    string
	logPath string

	configPath string   // resolved binding file path
	logFile    *os.File // closed after the command ran
}

// main runs the command line and exits non-zero on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   name,
		Short: "Run commands bound to keyboard chord sequences",
		Long: `Starts a daemon that binds keyboard chord sequences such as "C-x C-s" to a
command. Key events are read from the terminal. The bindings are defined in a
TOML or YAML file (hot-reload supported).

Chord notation: modifier letters C, S, A, M joined with '-' to a key, e.g.
"C-S-p", "A-M-dash", "escape". Chords of a sequence are separated by spaces.`,
		Version:      versionString(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logFile != nil {
				opts.logFile.Close() //nolint:errcheck
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(opts)
		},
	}

	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVarP(&opts.path, "file", "f", defaultConfigPath, "specify binding file path")
	root.PersistentFlags().StringVar(&opts.logPath, "log", "", "write the log to this file")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the daemon (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDaemon(opts)
			},
		},
		&cobra.Command{
			Use:   "record",
			Short: "Record a chord sequence typed in the terminal, stop with C-c",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRecord(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "check [file]",
			Short: "Validate a binding file and print the canonical form of each binding",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := opts.configPath
				if len(args) == 1 {
					path = args[0]
				}
				return runCheck(cmd.OutOrStdout(), path)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version and exit",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), versionString())
			},
		},
	)
	return root
}

func versionString() string {
	return fmt.Sprintf("%s %s, built on %s (commit: %s)", name, version, date, commit)
}

// resolve reads the environment, determines the binding file path and sets up logging.
func (o *options) resolve(cmd *cobra.Command) error {
	cfg, err := loadEnv()
	if err != nil {
		return err
	}
	o.configPath, err = resolveConfigPath(o.path, cmd.Flags().Changed("file"), cfg)
	if err != nil {
		return err
	}
	logPath := o.logPath
	if logPath == "" {
		logPath = cfg.LogPath
	}
	o.logFile, err = setupLogging(logPath)
	return err
}

// runDaemon registers the bindings of the binding file and launches their
// actions until C-c is pressed or the process is signalled.
func runDaemon(opts *options) error {
	screen, err := openScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	// Without a log file, log lines go to the status line.
	if opts.logFile == nil {
		logger.SetOutput(statusWriter{screen: screen})
		defer logger.SetOutput(os.Stdout)
	}

	src := newTerminalSource(screen)
	matcher, err := chordkeys.New(src, chordkeys.WithLogger(logger))
	if err != nil {
		return err
	}
	defer matcher.Close()

	d := newDaemon(matcher, opts.configPath)
	d.status = func(msg string) { drawStatus(screen, msg) }
	if err := d.reload(); err != nil {
		return fmt.Errorf("load config %s: %w", opts.configPath, err)
	}
	defer d.close()

	// Start config file watcher
	watcher, err := startConfigWatcher(opts.configPath, func() {
		if err := d.reload(); err != nil {
			logger.Printf("Failed to load config %s: %v", opts.configPath, err)
		}
	})
	if err != nil {
		logger.Printf("Config watcher disabled: %v", err)
	}
	if watcher != nil {
		defer watcher.Close() //nolint:errcheck
	}

	// Handle graceful shutdown on SIGINT/SIGTERM
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)
	go func() {
		if _, ok := <-interrupt; ok {
			screen.PostEvent(tcell.NewEventInterrupt(nil)) //nolint:errcheck
		}
	}()

	// Listen for key presses
	src.run(isCtrlC)
	return nil
}

// runRecord captures key events until C-c and prints the recorded sequence.
func runRecord(out io.Writer) error {
	screen, err := openScreen()
	if err != nil {
		return err
	}

	src := newTerminalSource(screen)
	recorder := chordkeys.NewRecorder(src)
	recorder.Start()
	drawStatus(screen, "Recording... press C-c to stop")
	src.run(isCtrlC)
	sequence := recorder.Stop()
	screen.Fini()

	if sequence == "" {
		return errors.New("nothing recorded")
	}
	fmt.Fprintln(out, sequence)
	fmt.Fprintln(out, renderKeycaps(sequence))
	return nil
}

// runCheck loads a binding file and reports every binding.
func runCheck(out io.Writer, path string) error {
	config, err := decodeConfig(path)
	if err != nil {
		return err
	}
	hotkeys, errs := compileBindings(config)
	for _, hk := range hotkeys {
		fmt.Fprintf(out, "ok    %d: %s -> %v\n", hk.ID, hk.Sequence, hk.Action)
	}
	for _, err := range errs {
		fmt.Fprintf(out, "FAIL  %v\n", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d invalid bindings in %s", len(errs), path)
	}
	return nil
}
