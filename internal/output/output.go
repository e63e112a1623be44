// Package output writes rendered trees and reports what was written.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

const (
	outputFilePermissions = 0o644

	writtenLineFormat = "Tree written to: %s\n"
	linesLineFormat   = "Total lines: %d\n"
	tokensLineFormat  = "Estimated tokens: %d (%s)\n"
	copiedLine        = "Copied to clipboard"

	errorWriteTreeFormat = "writing tree to %s: %w"
)

// Summary describes a finished run.
type Summary struct {
	OutputPath     string
	TotalLines     int
	Tokens         int
	TokenizerModel string
	CountedTokens  bool
	Copied         bool
}

// WriteTreeFile stores tree as UTF-8 text at outputPath, replacing any existing file.
// It returns the number of bytes written.
func WriteTreeFile(fileSystem afero.Fs, outputPath string, tree string) (int64, error) {
	fileHandle, openError := fileSystem.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputFilePermissions)
	if openError != nil {
		return 0, fmt.Errorf(errorWriteTreeFormat, outputPath, openError)
	}
	writtenBytes, writeError := io.WriteString(fileHandle, tree)
	closeError := fileHandle.Close()
	if writeError != nil {
		return int64(writtenBytes), fmt.Errorf(errorWriteTreeFormat, outputPath, writeError)
	}
	if closeError != nil {
		return int64(writtenBytes), fmt.Errorf(errorWriteTreeFormat, outputPath, closeError)
	}
	return int64(writtenBytes), nil
}

// WriteSummary prints the confirmation lines for summary.
func WriteSummary(writer io.Writer, summary Summary) error {
	if _, printError := fmt.Fprintf(writer, writtenLineFormat, summary.OutputPath); printError != nil {
		return printError
	}
	if _, printError := fmt.Fprintf(writer, linesLineFormat, summary.TotalLines); printError != nil {
		return printError
	}
	if summary.CountedTokens {
		if _, printError := fmt.Fprintf(writer, tokensLineFormat, summary.Tokens, summary.TokenizerModel); printError != nil {
			return printError
		}
	}
	if summary.Copied {
		if _, printError := fmt.Fprintln(writer, copiedLine); printError != nil {
			return printError
		}
	}
	return nil
}
