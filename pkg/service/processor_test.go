package service

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerpipe/bankfeed/pkg/config"
	"github.com/ledgerpipe/bankfeed/pkg/parser"
)

const hsbcExport = `Account name,Account number (preferred / formatted),Country/Territory,Value date,Transaction type,Account currency,Transaction amount,Transaction narrative,Bank reference,Customer reference,Supplementary detail
ACME HK,123-456789/SAV,Hong Kong,15/01/2026,CREDIT,HKD,"1,234.56",INWARD REMITTANCE,B001,C001,S001
`

func newTestProcessor(outputDir string) *Processor {
	return NewProcessor(&config.Config{OutputDir: outputDir}, log.New(io.Discard))
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "hsbc-jan-2026.csv")
	require.NoError(t, os.WriteFile(input, []byte(hsbcExport), 0o644))

	outDir := t.TempDir()
	require.NoError(t, newTestProcessor(outDir).ProcessFile(input))

	out, err := os.ReadFile(filepath.Join(outDir, "hsbc-jan-2026-normalized.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Account_Number")
	assert.Contains(t, string(out), "123-456789")
	assert.Contains(t, string(out), "2026-01-15")
	assert.Contains(t, string(out), "1234.56")
}

func TestProcessFileNextToInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "hsbc-jan-2026.csv")
	require.NoError(t, os.WriteFile(input, []byte(hsbcExport), 0o644))

	require.NoError(t, newTestProcessor("").ProcessFile(input))
	_, err := os.Stat(filepath.Join(dir, "hsbc-jan-2026-normalized.csv"))
	assert.NoError(t, err)
}

func TestProcessFileAmbiguousCSVName(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "statement-jan.csv")
	require.NoError(t, os.WriteFile(input, []byte(hsbcExport), 0o644))

	outDir := t.TempDir()
	require.NoError(t, newTestProcessor(outDir).ProcessFile(input))

	// The labelled header row wins over the filename guess.
	out, err := os.ReadFile(filepath.Join(outDir, "statement-jan-normalized.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "123-456789")
	assert.Contains(t, string(out), "2026-01-15")
}

func TestProcessFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("hello"), 0o644))

	err := newTestProcessor("").ProcessFile(input)
	require.ErrorIs(t, err, parser.ErrUnsupportedFormat)
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hsbc-jan-2026.csv"), []byte(hsbcExport), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	// A broken recognizable file is logged, not fatal for the batch.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broker.xlsx"), []byte("not an xlsx"), 0o644))

	outDir := t.TempDir()
	require.NoError(t, newTestProcessor(outDir).ProcessDirectory(dir))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hsbc-jan-2026-normalized.csv", entries[0].Name())
}
