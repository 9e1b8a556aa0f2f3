package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/evi/config"
	"github.com/ionut-t/evi/core"
	"github.com/ionut-t/evi/rawterm"
	"github.com/ionut-t/evi/tui"
	"github.com/ionut-t/evi/tui/highlighter"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path of the TOML config file")
	raw := flag.Bool("raw", false, "draw with the minimal raw terminal frontend")
	logFile := flag.String("log", os.Getenv("EVI_LOG"), "append debug logs to this file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: evi [flags] [file]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, *raw, *logFile, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "evi:", err)
		os.Exit(1)
	}
}

func run(configPath string, raw bool, logFile string, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("only one file can be edited, got %d", len(args))
	}

	// anything written to the terminal would tear the screen
	log.SetOutput(io.Discard)
	closeLog, err := openLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logFile == "" && cfg.LogFile != "" {
		closeCfgLog, err := openLog(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeCfgLog()
	}

	opts := cfg.Options()
	if cfg.Clipboard && tui.ClipboardAvailable() {
		opts.Clipboard = tui.SystemClipboard{}
	}

	editor := core.New(opts)
	if len(args) == 1 {
		if err := editor.Open(args[0]); err != nil {
			return err
		}
	}

	if raw || cfg.Frontend == config.FrontendRaw {
		return rawterm.New(editor, os.Stdin, os.Stdout, cfg.EscTimeout.Duration).Run(context.Background())
	}

	var hl *highlighter.Highlighter
	if cfg.Syntax {
		hl = highlighter.New(editor.FileName(), cfg.Theme)
	}

	m := tui.New(editor, 80, 24, tui.WithHighlighter(hl))
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func openLog(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "evi")
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return func() { _ = f.Close() }, nil
}
