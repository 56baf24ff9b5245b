package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/browser"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/config"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/fetcher"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/logger"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/server"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/store"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/webextract"
)

// Exit codes for granular error handling
const (
	ExitSuccess      = 0
	ExitNetworkError = 1
	ExitProcessError = 2
	ExitInvalidInput = 3
	ExitConfigError  = 4
	ExitFileIOError  = 5
)

const version = "1.0.0"

var (
	cfgFile    string
	addr       string
	dbPath     string
	logLevel   string
	useCookies bool
	browsers   []string

	outputFile string
	timeout    int
	asJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "cssdesigner",
	Short: "Decompose websites into themeable sections",
	Long: `cssdesigner fetches arbitrary websites, segments them into typed
sections with their relevant CSS, and serves a theming API over the result.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the theming API server",
	RunE:  runServe,
}

var extractCmd = &cobra.Command{
	Use:   "extract [url]",
	Short: "Extract a single website to stdout",
	Long: `extract runs the full pipeline against one URL and prints the
segmented sections without touching the theme store.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitErr); ok {
			os.Exit(exitErr.code)
		}
		os.Exit(ExitInvalidInput)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/cssdesigner/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&useCookies, "cookies", false, "attach browser cookies to fetch requests")
	rootCmd.PersistentFlags().StringSliceVar(&browsers, "browser", nil, "browsers to read cookies from (default: all)")

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")

	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output to file (default: stdout)")
	extractCmd.Flags().IntVar(&timeout, "timeout", 60, "overall extraction timeout in seconds")
	extractCmd.Flags().BoolVar(&asJSON, "json", true, "emit sections as JSON")

	rootCmd.AddCommand(serveCmd, extractCmd)
}

func setup() (*config.Config, *webextract.Service, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger.Init(os.Stderr, cfg.Logging.Level)

	opts := fetcher.Options{
		RequestTimeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		BrowserTimeout: time.Duration(cfg.Network.BrowserTimeout) * time.Second,
		MaxRedirects:   cfg.Network.MaxRedirects,
	}
	if useCookies || cfg.Browser.UseCookies {
		allowed := cfg.Browser.Browsers
		if len(browsers) > 0 {
			allowed = browsers
		}
		opts.Cookies = browser.NewCookieJar(allowed...)
	}

	return cfg, webextract.NewService(fetcher.New(opts)), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, extractor, err := setup()
	if err != nil {
		return exitError(ExitConfigError, "failed to load config: %v", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return exitError(ExitFileIOError, "failed to open database %s: %v", cfg.Storage.Path, err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, st, extractor)
	if err := srv.Run(ctx); err != nil {
		return exitError(ExitNetworkError, "server error: %v", err)
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	url := args[0]
	_, extractor, err := setup()
	if err != nil {
		return exitError(ExitConfigError, "failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	site, err := extractor.ExtractSite(ctx, url)
	if err != nil {
		return exitError(ExitNetworkError, "failed to fetch %s: %v", url, err)
	}
	sections, err := webextract.ExtractSections(site.HTML, site.CSS)
	if err != nil {
		return exitError(ExitProcessError, "failed to segment %s: %v", url, err)
	}
	features := webextract.ExtractCSSFeatures(site.HTML)

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return exitError(ExitFileIOError, "failed to create output file %s: %v", outputFile, err)
		}
		defer f.Close()
		out = f
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{
			"url":      url,
			"sections": sections,
			"features": features,
		}); err != nil {
			return exitError(ExitFileIOError, "failed to write output: %v", err)
		}
		return nil
	}

	for _, sec := range sections {
		fmt.Fprintf(out, "%s\t%s\t%s\n", sec.Type, sec.Name, sec.Selector)
	}
	return nil
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...interface{}) *exitErr {
	msg := fmt.Sprintf(format, args...)
	if msg != "" {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}
	return &exitErr{code: code, msg: msg}
}
