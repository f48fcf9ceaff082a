// Package export serializes analysis results to CSV and plain text for the
// clipboard.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/biaslens/internal/types"
)

const (
	// CSVFilename is the name of the exported file
	CSVFilename = "analysis.csv"
	// CSVMIMEType is the content type of the exported file
	CSVMIMEType = "text/csv"

	filePermissions = 0644
	dirPermissions  = 0755
)

var csvHeader = []string{"Sentence", "Bias", "Sentiment"}

// CSV renders records as CSV: a header row followed by one row per record.
// Every field is quoted and embedded quotes are doubled. Rows are separated
// by a single newline with no trailing newline.
func CSV(records []types.AnalysisRecord) string {
	rows := make([]string, 0, len(records)+1)
	rows = append(rows, csvRow(csvHeader...))
	for _, r := range records {
		rows = append(rows, csvRow(r.Sentence, r.Bias, r.Sentiment))
	}
	return strings.Join(rows, "\n")
}

func csvRow(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// ExportCSV packages the CSV rendering as a download
func ExportCSV(records []types.AnalysisRecord) types.Download {
	return types.Download{
		Filename: CSVFilename,
		MIMEType: CSVMIMEType,
		Data:     []byte(CSV(records)),
	}
}

// Save writes a download into dir (created if missing) and returns its path.
// An existing file with the same name is overwritten.
func Save(dir string, d types.Download) (string, error) {
	if dir == "" {
		dir = "."
	}
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, d.Filename)
	if err := os.WriteFile(path, d.Data, filePermissions); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", d.Filename, err)
	}
	return path, nil
}

// Sentences joins every sentence with a newline
func Sentences(records []types.AnalysisRecord) string {
	sentences := make([]string, len(records))
	for i, r := range records {
		sentences[i] = r.Sentence
	}
	return strings.Join(sentences, "\n")
}
