package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rohmanhakim/aoc-cache/internal/build"
	"github.com/rohmanhakim/aoc-cache/internal/config"
	"github.com/rohmanhakim/aoc-cache/internal/fetcher"
	"github.com/rohmanhakim/aoc-cache/internal/inputcache"
	"github.com/rohmanhakim/aoc-cache/internal/metadata"
	"github.com/rohmanhakim/aoc-cache/internal/scratch"
	"github.com/rohmanhakim/aoc-cache/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	cookieFile  string
	cacheDir    string
	timeout     time.Duration
	userAgent   string
	logLevel    string
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aoc-cache <input-url>",
	Short: "Fetch an Advent of Code puzzle input through a local cache.",
	Long: `aoc-cache fetches an Advent of Code puzzle input with your session
cookie and keeps a copy on disk, so rerunning a solution never asks
the server for the same input twice.

The cookie is read from a file (see --cookie-file) and should look
like "session=abcd..." without a trailing newline. The fetched input
is printed to stdout, ready to pipe into a solver:

  aoc-cache https://adventofcode.com/2022/day/1/input > day1.txt`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Printf("aoc-cache %s\n", build.FullVersion())
			return
		}

		if len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Error: an input URL is required.\n")
			cmd.Usage()
			os.Exit(1)
		}

		cfg := InitConfig()

		cookie, err := readCookieFile(cfg.CookiePath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		logger, err := metadata.NewLogger(cfg.LogLevel())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		sink := metadata.NewLogRecorder(logger)

		inputFetcher := fetcher.NewInputFetcher(&sink, cfg.Timeout())
		localStore := store.NewLocalStore(scratch.NewLocalProvider(cfg.CacheDir()))
		service := inputcache.NewService(&inputFetcher, localStore, &sink, cfg.UserAgent())

		content, getErr := service.Get(cmd.Context(), args[0], cookie)
		if getErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", getErr)
			os.Exit(1)
		}

		fmt.Print(content)
	},
}

// readCookieFile reads the session cookie from path, trimming the
// surrounding whitespace a pasted cookie usually carries.
func readCookieFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read cookie file %s: %w", path, err)
	}
	cookie := strings.TrimSpace(string(content))
	if cookie == "" {
		return "", fmt.Errorf("cookie file %s is empty", path)
	}
	return cookie, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&cookieFile, "cookie-file", "", "file containing the session cookie (default \"my.cookie\")")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache root directory (defaults to the user cache directory)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&showVersion, "version", false, "print the version and exit")
}

// InitConfig reads in the config file and flag overrides.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in the config file and flag overrides,
// returning any errors. This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return applyFlagOverrides(&cfg).Build()
	}

	// Start with default config and apply overrides using method chaining
	return applyFlagOverrides(config.WithDefault()).Build()
}

// applyFlagOverrides layers CLI flag values over cfg where provided.
func applyFlagOverrides(cfg *config.Config) *config.Config {
	if cookieFile != "" {
		cfg = cfg.WithCookiePath(cookieFile)
	}
	if cacheDir != "" {
		cfg = cfg.WithCacheDir(cacheDir)
	}
	if timeout > 0 {
		cfg = cfg.WithTimeout(timeout)
	}
	if userAgent != "" {
		cfg = cfg.WithUserAgent(userAgent)
	}
	if logLevel != "" {
		cfg = cfg.WithLogLevel(logLevel)
	}
	return cfg
}

func ResetFlags() {
	cfgFile = ""
	cookieFile = ""
	cacheDir = ""
	timeout = 0
	userAgent = ""
	logLevel = ""
	showVersion = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetCookieFileForTest(path string) {
	cookieFile = path
}

func SetCacheDirForTest(dir string) {
	cacheDir = dir
}

func SetTimeoutForTest(d time.Duration) {
	timeout = d
}
