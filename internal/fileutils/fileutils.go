// Package fileutils provides the file operations around a conversion: loading the
// input, deriving the output file names and creating output files.
package fileutils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/broker-qif/internal/models"
)

// OutputPaths are the files a conversion may write.
type OutputPaths struct {
	Primary    string // investment or bank ledger, depending on the account type
	Linked     string // cash movements routed to the linked cash account
	Securities string // securities first seen in this run
}

// DeriveOutputPaths names the output files after the input file:
// "<outDir>/invest_<base>.qif" (or "cash_" for bank accounts),
// "<outDir>/linked_cash_<base>.qif" and "<outDir>/securities_<base>.qif".
// An empty outDir means the current directory.
func DeriveOutputPaths(inputFile, outDir string, account models.AccountType) (OutputPaths, error) {
	name := filepath.Base(inputFile)
	if inputFile == "" || name == "." || name == string(filepath.Separator) {
		return OutputPaths{}, fmt.Errorf("unable to get file name from: %q", inputFile)
	}
	if outDir == "" {
		outDir = "."
	}

	base := strings.TrimSuffix(name, filepath.Ext(name)) + ".qif"
	return OutputPaths{
		Primary:    filepath.Join(outDir, account.FilePrefix()+base),
		Linked:     filepath.Join(outDir, "linked_cash_"+base),
		Securities: filepath.Join(outDir, "securities_"+base),
	}, nil
}

// ReadFileToCursor loads a whole file into memory and returns a seekable reader over it.
func ReadFileToCursor(filePath string) (*bytes.Reader, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// ReadFile reads the entire contents of a file and returns it as a byte slice
func ReadFile(filePath string) ([]byte, error) {
	if !FileExists(filePath) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- input path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// CreateFile creates or truncates a file for writing, creating parent
// directories when needed.
func CreateFile(filePath string) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, models.PermissionOutputFile) // #nosec G304 -- output path derived from the input name
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return file, nil
}

// ListFilesWithExtension returns the files directly inside dirPath whose
// extension matches (case-insensitively), sorted by name.
func ListFilesWithExtension(dirPath, extension string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, fmt.Errorf("directory does not exist: %s", dirPath)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), extension) {
			files = append(files, filepath.Join(dirPath, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
