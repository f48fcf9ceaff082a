package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-isatty"
	"github.com/studiowebux/biaslens/internal/analysis"
	"github.com/studiowebux/biaslens/internal/analytics"
	"github.com/studiowebux/biaslens/internal/config"
	"github.com/studiowebux/biaslens/internal/executor"
	"github.com/studiowebux/biaslens/internal/export"
	"github.com/studiowebux/biaslens/internal/filter"
	"github.com/studiowebux/biaslens/internal/session"
	"github.com/studiowebux/biaslens/internal/types"
	"gopkg.in/yaml.v3"
)

// RunOptions contains options for a one-shot analysis
type RunOptions struct {
	Mode         types.Mode
	Input        string // text, URL, video URL or audio file path
	Profile      string
	BaseURL      string
	EnvFile      string // path to .env file
	Timeout      time.Duration
	Bias         string // exact bias label filter
	Sentiment    string // case-insensitive sentiment filter
	Search       string // fuzzy sentence search
	Query        string // JMESPath query over the raw response
	OutputFormat string // text, json, yaml, csv
	CSVDir       string // write analysis.csv into this directory
	Copy         bool   // copy every sentence to the clipboard

	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard export.Clipboard
}

// Run submits one analysis and prints the filtered records.
// Any failure is returned; the caller exits non-zero.
func Run(ctx context.Context, opts RunOptions) error {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	if !opts.Mode.Valid() {
		return fmt.Errorf("unknown mode %s", opts.Mode)
	}
	if opts.Query != "" && !filter.IsValidJMESPath(opts.Query) {
		return fmt.Errorf("invalid JMESPath query: %s", opts.Query)
	}

	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if opts.Profile != "" {
		if err := mgr.SetActiveProfile(opts.Profile); err != nil {
			return fmt.Errorf("failed to set profile: %w", err)
		}
	}
	profile := mgr.GetActiveProfile()

	envVars, err := config.LoadEnvFile(opts.EnvFile)
	if err != nil {
		return err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = session.Timeout(profile)
	}

	client, err := executor.NewClient(executor.Options{
		BaseURL: config.ResolveBaseURL(opts.BaseURL, envVars, profile.BaseURL),
		Timeout: timeout,
		Headers: profile.Headers,
		TLS:     profile.TLS,
	})
	if err != nil {
		return err
	}

	state := analysis.NewState()
	state.SetMode(opts.Mode)
	state.SetInput(opts.Mode, opts.Input)

	ticket, ok := state.Begin()
	if !ok {
		if opts.Mode == types.ModeOther {
			return fmt.Errorf("%s: %w", opts.Mode, executor.ErrUnsupportedMode)
		}
		return executor.ErrEmptyInput
	}

	req, err := executor.BuildRequest(ticket.Mode, ticket.Input)
	if err != nil {
		state.Fail(ticket, err.Error())
		return err
	}

	slog.Debug("submitting analysis",
		slog.String("mode", ticket.Mode.String()),
		slog.String("endpoint", client.Endpoint()),
		slog.String("profile", profile.Name))

	result, err := client.Analyze(ctx, req)
	recordSubmission(profile, client.Endpoint(), ticket.Mode, result, err)
	if err != nil {
		state.Fail(ticket, err.Error())
		return err
	}
	state.Complete(ticket, result.Records)

	if result.Malformed {
		fmt.Fprintln(stderr, "Warning: the service returned an unreadable response; no results")
	}

	records := state.Filtered(types.FilterCriteria{
		Bias:      strings.TrimSpace(opts.Bias),
		Sentiment: strings.ToLower(strings.TrimSpace(opts.Sentiment)),
	})
	records = filter.Search(records, opts.Search)

	if opts.CSVDir != "" {
		path, err := export.Save(opts.CSVDir, export.ExportCSV(state.Results()))
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "CSV saved to %s\n", path)
	}

	if opts.Copy {
		clip := opts.Clipboard
		if clip == nil {
			clip = export.NewSystemClipboard()
		}
		if err := export.CopyAllSentences(clip, state.Results()); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Copied %d sentences to clipboard\n", len(state.Results()))
	}

	if opts.Query != "" {
		queried, err := filter.Apply(string(result.Body), opts.Query)
		if err != nil {
			return err
		}
		return writeJSON(stdout, queried)
	}

	outputFormat := opts.OutputFormat
	if outputFormat == "" {
		outputFormat = profile.Output
	}

	output, err := formatOutput(records, outputFormat, isTerminal(stdout))
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if outputFormat == "json" {
		return writeJSON(stdout, output)
	}

	fmt.Fprint(stdout, output)
	return nil
}

// recordSubmission stores submission metadata when the profile opts in.
// Analytics failures never fail the analysis.
func recordSubmission(profile *types.Profile, endpoint string, mode types.Mode, result *executor.Result, analyzeErr error) {
	if !profile.IsAnalyticsEnabled() {
		return
	}

	entry := analytics.Entry{
		Mode:        mode.String(),
		Endpoint:    endpoint,
		Timestamp:   time.Now(),
		ProfileName: profile.Name,
	}
	if result != nil {
		entry.StatusCode = result.Status
		entry.DurationMs = result.Duration
		entry.RequestSize = int64(result.RequestSize)
		entry.ResponseSize = int64(result.ResponseSize)
		entry.RecordCount = len(result.Records)
	}
	if analyzeErr != nil {
		entry.ErrorMessage = analyzeErr.Error()
		var serverErr *executor.ServerError
		if errors.As(analyzeErr, &serverErr) {
			entry.StatusCode = serverErr.Status
		}
	}

	mgr, err := analytics.NewManager(config.DatabasePath)
	if err != nil {
		slog.Warn("analytics unavailable", slog.String("error", err.Error()))
		return
	}
	defer mgr.Close()

	if err := mgr.Save(entry); err != nil {
		slog.Warn("failed to save analytics", slog.String("error", err.Error()))
	}
}

// formatOutput renders records in the requested format
func formatOutput(records []types.AnalysisRecord, format string, color bool) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "yaml":
		data, err := yaml.Marshal(records)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "csv":
		return export.CSV(records) + "\n", nil

	case "text", "":
		var sb strings.Builder
		if len(records) == 0 {
			sb.WriteString("No results\n")
			return sb.String(), nil
		}
		for i, r := range records {
			biasLabel, sentimentLabel := r.Bias, r.Sentiment
			if color {
				biasLabel = colorCyan + biasLabel + colorReset
				sentimentLabel = sentimentColor(r.Sentiment) + sentimentLabel + colorReset
			}
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, r.Sentence))
			sb.WriteString(fmt.Sprintf("   Bias: %s | Sentiment: %s\n", biasLabel, sentimentLabel))
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown output format %q (use text, json, yaml or csv)", format)
	}
}

// writeJSON prints JSON, highlighted when w is a terminal
func writeJSON(w io.Writer, data string) error {
	if isTerminal(w) {
		if err := quick.Highlight(w, data+"\n", "json", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err := fmt.Fprintln(w, data)
	return err
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

func sentimentColor(sentiment string) string {
	switch strings.ToLower(sentiment) {
	case "positive":
		return colorGreen
	case "negative":
		return colorRed
	}
	return colorYellow
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// Stats prints per-mode submission statistics for the active profile
func Stats(w io.Writer, profileName string) error {
	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if profileName == "" {
		profileName = mgr.GetActiveProfile().Name
	}

	store, err := analytics.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.GetStatsPerMode(profileName)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Fprintf(w, "No submissions recorded for profile %q (set \"analyticsEnabled\": true in profiles.jsonc)\n", profileName)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tCALLS\tOK\tERRORS\tNETWORK\tRECORDS\tRECEIVED\tAVG\tMIN\tMAX\tLAST")
	for _, s := range stats {
		last := "-"
		if !s.LastCalled.IsZero() {
			last = s.LastCalled.Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			s.Mode,
			s.TotalCalls,
			s.SuccessCount,
			s.ErrorCount,
			s.NetworkErrors,
			s.TotalRecords,
			executor.FormatSize(int(s.TotalResponseBytes)),
			executor.FormatDuration(int64(s.AvgDurationMs)),
			executor.FormatDuration(s.MinDurationMs),
			executor.FormatDuration(s.MaxDurationMs),
			last,
		)
	}
	return tw.Flush()
}

// ClearStats deletes every recorded submission
func ClearStats() error {
	store, err := analytics.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Clear()
}
