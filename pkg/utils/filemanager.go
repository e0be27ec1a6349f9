// =============================================================================
// docbatch - File Manager Utility
// =============================================================================
//
// This module provides the filesystem side of every batch:
//   - Output directory placement and creation
//   - PDF discovery in a folder
//   - Copy (rename mode) and move (split mode) of result files
//   - Run summary files
//
// OUTPUT LAYOUT:
//   Results always land in an "output" folder next to the input:
//
//   invoices/            <- scanned folder (rename mode)
//     a.pdf
//     output/            <- <folder>/output
//   orders/
//     orders.xlsx        <- source file (split modes)
//     output/            <- <dir(file)>/output
//
//   The folder is created if missing, reused if present, and never cleaned.
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultOutputDirName is the name of the results folder.
const DefaultOutputDirName = "output"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager places and manages output folders.
type FileManager struct {
	// OutputDirName is the name of the results folder created next to the
	// input. Default: "output"
	OutputDirName string
}

// NewFileManager creates a FileManager. An empty name selects the default.
func NewFileManager(outputDirName string) *FileManager {
	if outputDirName == "" {
		outputDirName = DefaultOutputDirName
	}
	return &FileManager{OutputDirName: outputDirName}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// OutputDirFor returns the output folder for an input path: inside the path
// when it is a directory, otherwise beside the file.
func (fm *FileManager) OutputDirFor(input string) string {
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return filepath.Join(input, fm.OutputDirName)
	}
	return filepath.Join(filepath.Dir(input), fm.OutputDirName)
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverPDFs lists the PDF files directly inside folder, sorted by name.
// The extension match is case-insensitive and subfolders are not searched.
func DiscoverPDFs(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(folder, entry.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files, nil
}

// =============================================================================
// COPY AND MOVE
// =============================================================================

// CopyFile copies src to dst, replacing dst if it exists. Permission bits and
// the modification time of src are carried over.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Sync(); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, time.Now(), info.ModTime())
}

// MoveFile renames src to dst, replacing dst. When a plain rename is not
// possible (different volumes) it falls back to copy and delete.
func MoveFile(src, dst string) error {
	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	if err := CopyFile(src, dst); err != nil {
		return errors.Join(renameErr, err)
	}
	return os.Remove(src)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// NewRunID returns a fresh identifier for one batch run.
func NewRunID() string {
	return uuid.NewString()
}

// RunSummary is what WriteSummaryLog records about one run.
type RunSummary struct {
	RunID     string
	Operation string
	Source    string
	OutputDir string
	StartTime time.Time
	EndTime   time.Time
	Succeeded int
	Total     int
	Items     []ItemOutcome
}

// ItemOutcome is one processed input (file, page or group).
type ItemOutcome struct {
	Input   string
	Output  string
	Status  string
	Message string
}

// WriteSummaryLog writes a plain-text run summary into outputDir and returns
// its path.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	runID := summary.RunID
	if runID == "" {
		runID = NewRunID()
	}
	shortID := runID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	timestamp := summary.EndTime
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	summaryFileName := fmt.Sprintf("docbatch_%s_%s_%s.txt",
		strings.ReplaceAll(summary.Operation, " ", "-"), timestamp.Format("20060102_150405"), shortID)
	summaryPath := filepath.Join(outputDir, summaryFileName)

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "docbatch - %s summary\n", summary.Operation)
	writer.WriteString("================================================================================\n\n")
	fmt.Fprintf(writer, "Run ID:      %s\n", runID)
	fmt.Fprintf(writer, "Source:      %s\n", summary.Source)
	fmt.Fprintf(writer, "Output:      %s\n", summary.OutputDir)
	if !summary.StartTime.IsZero() {
		fmt.Fprintf(writer, "Start Time:  %s\n", summary.StartTime.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(writer, "Duration:    %s\n", summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond))
	}
	fmt.Fprintf(writer, "Succeeded:   %d of %d\n\n", summary.Succeeded, summary.Total)

	if len(summary.Items) > 0 {
		writer.WriteString("Items:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, item := range summary.Items {
			fmt.Fprintf(writer, "  [%s] %s", item.Status, item.Input)
			if item.Output != "" {
				fmt.Fprintf(writer, " -> %s", item.Output)
			}
			if item.Message != "" {
				fmt.Fprintf(writer, " (%s)", item.Message)
			}
			writer.WriteString("\n")
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
