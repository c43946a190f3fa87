package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fivemoreminix/qsource/pkg/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:     "qsource [files...]",
	Short:   "A terminal editor for HTML source",
	Long:    `qsource edits HTML source in the terminal, highlighting entities, tags and comments as you type.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.qsource.yaml or ~/.config/qsource/config.yaml)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false,
		"write a debug log")
	rootCmd.Flags().StringVar(&logFile, "log-file", "debug.log",
		"path of the debug log")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	if debug {
		closeLog, err := log.Init(logFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg, configPath, err := loadConfig(viper.GetViper(), cfgFile, home)
	if err != nil {
		return err
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetMinLevel(level)
	} else {
		log.Warn(log.CatConfig, "Ignoring log level", "value", cfg.LogLevel)
	}
	log.Info(log.CatConfig, "Loaded config", "path", configPath)

	theme, err := cfg.Colors.Theme()
	if err != nil {
		// The colors that could be parsed are still used
		log.ErrorErr(log.CatConfig, "Invalid colors", err)
	}

	clip, _ := ClipInitialize(ClipExternal) // Falls back to an internal clipboard

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer s.Fini() // Useful for handling panics

	editor := NewEditor(s, cfg, configPath, theme, clip)

	if cfg.WatchFiles {
		watcher, err := NewFileWatcher(200*time.Millisecond, func(path string) {
			_ = s.PostEvent(tcell.NewEventInterrupt(reloadEvent{path: path}))
		})
		if err != nil {
			log.ErrorErr(log.CatWatcher, "File watching disabled", err)
		} else {
			defer func() { _ = watcher.Stop() }()
			editor.SetWatcher(watcher)
		}
	}

	// Load files from command-line arguments
	for _, path := range args {
		if err := editor.OpenFile(path); err != nil {
			editor.showError(log.CatFile, "Could not open file", err)
		}
	}

	editor.Run()
	return nil
}
