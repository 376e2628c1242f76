package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gitchart/gitchart/pkg/errors"
	"github.com/gitchart/gitchart/pkg/pipeline"
)

// stdoutPath is the conventional path for writing to standard output.
const stdoutPath = "-"

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}
	return f, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output carries a known format extension, that extension is stripped so
// per-format suffixes can be appended.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath resolves where one format's output goes. A single requested
// format honors the explicit output path as-is; multiple formats fan out to
// base.<format> files.
func artifactPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// artifactFile records one written output for reporting.
type artifactFile struct {
	Path string
	Size int
}

// saveArtifacts writes each rendered format to its resolved path and returns
// the written files. Stdout writes are not included in the returned list.
func saveArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]artifactFile, error) {
	if output == stdoutPath && len(formats) > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot write multiple formats to stdout")
	}
	single := len(formats) == 1

	var files []artifactFile
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "no artifact rendered for format %q", format)
		}

		path := output
		if path != stdoutPath {
			path = artifactPath(output, input, format, single)
		}

		out, err := openOutput(path)
		if err != nil {
			return nil, err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
		}
		if err := out.Close(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "close %s", path)
		}

		if path != stdoutPath {
			files = append(files, artifactFile{Path: path, Size: len(data)})
		}
	}
	return files, nil
}

// writeArtifacts saves the rendered formats and prints a summary line per
// written file. Stdout output skips the summary so the artifact stream
// stays clean.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) error {
	files, err := saveArtifacts(artifacts, formats, output, input)
	if err != nil {
		return err
	}
	for _, f := range files {
		printFile(f.Path, humanize.Bytes(uint64(f.Size)))
	}
	return nil
}

// readInput reads the conversion source from path, or from stdin when path
// is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s not found", path)
		}
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return string(data), nil
}
