package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// Report is what formatters render: one simulation plus its metadata footer.
type Report struct {
	Result   *domain.SimulationResult `json:"result"`
	Metadata Metadata                 `json:"metadata"`
}

// NewReport builds a simulation report generated at now.
func NewReport(result *domain.SimulationResult, now time.Time) *Report {
	return &Report{Result: result, Metadata: SimulationMetadata(result, now)}
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

// ExportFilename names an export file after its report kind, the country
// and the generation time in milliseconds.
func ExportFilename(kind ReportKind, country, ext string, now time.Time) string {
	prefix := "wealth-tax-simulation"
	if kind == KindComparison {
		prefix = "tax-rates-comparison"
	}
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(country)), " ", "-")
	if slug == "" {
		slug = "all"
	}
	return fmt.Sprintf("%s-%s-%d.%s", prefix, slug, now.UnixMilli(), ext)
}

// WriteFormatted runs a formatter and writes output into dir under an
// export filename. It returns the path written.
func WriteFormatted(f Formatter, report *Report, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format %s output: %w", f.Name(), err)
	}
	filename := filepath.Join(dir, ExportFilename(report.Metadata.Kind, report.Metadata.Country, Extension(f.Name()), report.Metadata.GeneratedAt))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// Extension returns the file extension for a formatter name.
func Extension(name string) string {
	switch NormalizeFormatName(name) {
	case "console":
		return "txt"
	default:
		return NormalizeFormatName(name)
	}
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":       "console",
	"text":        "console",
	"txt":         "console",
	"html-report": "html",
	"json-pretty": "json",
	"spreadsheet": "csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
