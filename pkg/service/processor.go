package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ledgerpipe/bankfeed/pkg/config"
	"github.com/ledgerpipe/bankfeed/pkg/export"
	"github.com/ledgerpipe/bankfeed/pkg/models"
	"github.com/ledgerpipe/bankfeed/pkg/parser"
)

// Processor converts bank export files on disk into normalized CSV files.
type Processor struct {
	config *config.Config
	logger *log.Logger
	parser *parser.Parser
}

func NewProcessor(cfg *config.Config, logger *log.Logger) *Processor {
	return &Processor{
		config: cfg,
		logger: logger,
		parser: parser.New(logger),
	}
}

// ProcessDirectory converts every recognizable file in dir. Per-file failures
// are logged and do not stop the batch.
func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if parser.DetectFormat(entry.Name()) == "" {
			continue
		}
		if err := p.ProcessFile(filepath.Join(dir, entry.Name())); err != nil {
			p.logger.Error("failed to process file", "file", entry.Name(), "error", err)
		}
	}

	return nil
}

// ProcessFile converts a single export and writes the normalized CSV next to
// it (or into the configured output directory).
func (p *Processor) ProcessFile(inputPath string) error {
	format := parser.DetectFormat(filepath.Base(inputPath))
	if format == "" {
		return fmt.Errorf("%w: %s", parser.ErrUnsupportedFormat, filepath.Base(inputPath))
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	format = parser.RefineCSVFormat(format, data)

	p.logger.Info("processing file", "path", inputPath, "format", format)

	output, count, skipped, err := p.convert(format, data)
	if err != nil {
		return fmt.Errorf("error parsing file: %w", err)
	}
	if count == 0 {
		p.logger.Warn("no qualifying records found", "path", inputPath)
	}

	outPath := p.outputPath(inputPath)
	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	p.logger.Info("processed file", "input", inputPath, "output", outPath,
		"records", count, "skipped", skipped)
	return nil
}

func (p *Processor) convert(format parser.Format, data []byte) ([]byte, int, int, error) {
	switch format {
	case parser.CitiMonthlyCSV:
		return toCSV(p.parser.ParseCitiMonthlyCSV(data))
	case parser.CitiMonthlyXLS:
		return toCSV(p.parser.ParseCitiMonthlyXLS(data))
	case parser.CitiDailyBalance:
		return toCSV(p.parser.ParseCitiDailyBalance(data))
	case parser.HSBCMonthlyCSV:
		return toCSV(p.parser.ParseHSBCMonthlyCSV(data))
	case parser.BrokerStatementXLSX:
		return toCSV(p.parser.ParseBrokerStatementXLSX(data))
	default:
		return nil, 0, 0, parser.ErrUnsupportedFormat
	}
}

func toCSV[T export.Row](result *models.Result[T], err error) ([]byte, int, int, error) {
	if err != nil {
		return nil, 0, 0, err
	}
	return export.Create(result.Records, nil), len(result.Records), len(result.Skipped), nil
}

func (p *Processor) outputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + "-normalized.csv"
	if p.config.OutputDir != "" {
		return filepath.Join(p.config.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}
