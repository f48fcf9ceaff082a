package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/studiowebux/biaslens/internal/cli"
	"github.com/studiowebux/biaslens/internal/config"
	"github.com/studiowebux/biaslens/internal/logging"
	"github.com/studiowebux/biaslens/internal/mock"
	"github.com/studiowebux/biaslens/internal/session"
	"github.com/studiowebux/biaslens/internal/tui"
	"github.com/studiowebux/biaslens/internal/types"
	"github.com/studiowebux/biaslens/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "biaslens",
	Short: "BiasLens - bias and sentiment analysis client",
	Long: `BiasLens sends articles, text, videos and audio to a bias/sentiment
analysis service and shows the result per sentence.

Run without arguments to start the interactive TUI, or use 'analyze' for a
one-shot analysis that prints to stdout.

Examples:
  biaslens                                        # Start interactive TUI
  biaslens analyze --url https://example.com/a    # Analyze an article
  biaslens analyze --text "One. Two." -o json     # Analyze pasted text
  cat speech.txt | biaslens analyze --text -      # Text from stdin
  biaslens analyze --audio talk.mp3 --bias left   # Filter by bias
  biaslens analyze --url ... --csv ./out          # Write out/analysis.csv
  biaslens stats                                  # Submission statistics
  biaslens mock                                   # Local stand-in service`,
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runTUI()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one input and print the results",
	Long: `Analyze one input and print the per-sentence results.

Pass one of --text, --url, --video or --audio. Use --text - to read the
text from stdin. Without an input flag on a terminal, an interactive
prompt asks for the mode and the input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		logging.Init(os.Stderr, flagVerbose)
		return runAnalyze(cmd)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-mode submission statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		logging.Init(os.Stderr, flagVerbose)
		if flagClearStats {
			if err := cli.ClearStats(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Analytics cleared")
			return nil
		}
		return cli.Stats(os.Stdout, flagProfile)
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a local stand-in analysis service",
	Long: `Run a local stand-in for the analysis service on POST /analyze.

Text submissions are classified offline with phrase lists. URL, video and
audio submissions are answered from fixtures in a YAML or JSON config.

Examples:
  biaslens mock                       # http://localhost:8000
  biaslens mock --port 9000 -c fixtures.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(os.Stderr, flagVerbose)

		cfg := &mock.Config{Logging: true}
		if flagMockConfig != "" {
			loaded, err := mock.LoadConfig(flagMockConfig)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = flagMockPort
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = flagMockHost
		}

		srv := mock.NewServer(cfg)
		if err := srv.Start(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Mock analysis service listening on %s (ctrl+c to stop)\n", srv.GetAddress())

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return srv.Stop()
			case entry := <-srv.Requests():
				fmt.Fprintln(os.Stderr, entry)
			}
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and optionally check for updates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("biaslens %s\n", version.Version)
		if !flagCheck {
			return nil
		}
		update, err := version.CheckForUpdate(cmd.Context(), version.Version)
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		if update.Available {
			fmt.Printf("Update available: %s (%s)\n", update.Latest, update.URL)
		} else {
			fmt.Println("You are running the latest version")
		}
		return nil
	},
}

// Shared flags
var (
	flagProfile string
	flagBaseURL string
	flagEnvFile string
	flagTimeout time.Duration
	flagVerbose bool
)

// Flags for analyze
var (
	flagText      string
	flagURL       string
	flagVideo     string
	flagAudio     string
	flagBias      string
	flagSentiment string
	flagSearch    string
	flagQuery     string
	flagOutput    string
	flagCSVDir    string
	flagCopy      bool
)

// Flags for mock
var (
	flagMockConfig string
	flagMockHost   string
	flagMockPort   int
)

// Flags for stats and version
var (
	flagClearStats bool
	flagCheck      bool
	flagNoUpdate   bool
)

// addClientFlags registers the flags that shape the analysis client
func addClientFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagBaseURL, "base-url", "", "Analysis service base URL (overrides profile and "+config.EnvAPIURL+")")
	fs.StringVar(&flagEnvFile, "env-file", "", "Load "+config.EnvAPIURL+" from an env file")
	fs.DurationVar(&flagTimeout, "timeout", 0, "Request timeout (default from profile, then 2m)")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "Profile to use")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
	addClientFlags(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&flagNoUpdate, "no-update-check", false, "Do not check for a newer release")

	addClientFlags(analyzeCmd.Flags())
	analyzeCmd.Flags().StringVar(&flagText, "text", "", "Text to analyze (- reads stdin)")
	analyzeCmd.Flags().StringVar(&flagURL, "url", "", "Article URL to analyze")
	analyzeCmd.Flags().StringVar(&flagVideo, "video", "", "Video URL to analyze")
	analyzeCmd.Flags().StringVar(&flagAudio, "audio", "", "Audio file to analyze")
	analyzeCmd.Flags().StringVar(&flagBias, "bias", "", "Only show sentences with this bias label")
	analyzeCmd.Flags().StringVar(&flagSentiment, "sentiment", "", "Only show sentences with this sentiment")
	analyzeCmd.Flags().StringVar(&flagSearch, "search", "", "Fuzzy search sentences")
	analyzeCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query over the raw response")
	analyzeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml/csv)")
	analyzeCmd.Flags().StringVar(&flagCSVDir, "csv", "", "Write analysis.csv into this directory")
	analyzeCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy every sentence to the clipboard")
	analyzeCmd.MarkFlagsMutuallyExclusive("text", "url", "video", "audio")

	statsCmd.Flags().BoolVar(&flagClearStats, "clear", false, "Delete all recorded submissions")
	mockCmd.Flags().StringVarP(&flagMockConfig, "config", "c", "", "Fixture config file (.yaml, .yml or .json)")
	mockCmd.Flags().StringVar(&flagMockHost, "host", "localhost", "Host to bind")
	mockCmd.Flags().IntVar(&flagMockPort, "port", 8000, "Port to bind")
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check GitHub for a newer release")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(versionCmd)
}

// runAnalyze runs a one-shot analysis in CLI mode
func runAnalyze(cmd *cobra.Command) error {
	mode, input, err := selectedInput(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return cli.Run(ctx, cli.RunOptions{
		Mode:         mode,
		Input:        input,
		Profile:      flagProfile,
		BaseURL:      flagBaseURL,
		EnvFile:      flagEnvFile,
		Timeout:      flagTimeout,
		Bias:         flagBias,
		Sentiment:    flagSentiment,
		Search:       flagSearch,
		Query:        flagQuery,
		OutputFormat: flagOutput,
		CSVDir:       flagCSVDir,
		Copy:         flagCopy,
	})
}

// selectedInput maps the input flag that was set to its mode
func selectedInput(cmd *cobra.Command) (types.Mode, string, error) {
	switch {
	case cmd.Flags().Changed("text"):
		if flagText != "-" {
			return types.ModeText, flagText, nil
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return 0, "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return types.ModeText, string(data), nil
	case cmd.Flags().Changed("url"):
		return types.ModeURL, strings.TrimSpace(flagURL), nil
	case cmd.Flags().Changed("video"):
		return types.ModeVideo, strings.TrimSpace(flagVideo), nil
	case cmd.Flags().Changed("audio"):
		return types.ModeAudio, flagAudio, nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return 0, "", fmt.Errorf("one of --text, --url, --video or --audio is required")
	}
	return cli.PromptForInput(os.Stdin, os.Stderr)
}

// runTUI starts the interactive TUI
func runTUI() error {
	logFile, err := logging.InitFile(config.LogFile, flagVerbose)
	if err != nil {
		return err
	}
	defer logFile.Close()

	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if flagProfile != "" {
		if err := mgr.SetActiveProfile(flagProfile); err != nil {
			return fmt.Errorf("failed to set profile: %w", err)
		}
	}

	envVars, err := config.LoadEnvFile(flagEnvFile)
	if err != nil {
		return err
	}

	return tui.Run(mgr, version.Version, tui.Options{
		BaseURL:      flagBaseURL,
		EnvVars:      envVars,
		Timeout:      flagTimeout,
		CheckUpdates: !flagNoUpdate && version.Version != "dev",
		KeybindsFile: config.KeybindsFile,
	})
}
