package packages

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/types"
)

// DefaultCommentPrefix marks comment lines in a requirements file
const DefaultCommentPrefix = "#"

// ParseRequirements reads package names, one per line. Surrounding
// whitespace is trimmed; blank lines and comment lines are skipped.
// Order and duplicates are preserved.
func ParseRequirements(r io.Reader, commentPrefix string) ([]string, error) {
	if commentPrefix == "" {
		commentPrefix = DefaultCommentPrefix
	}

	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read requirements")
	}
	return names, nil
}

// ReadRequirements parses the requirements file at path
func ReadRequirements(fsys types.FS, path, commentPrefix string) ([]string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("requirements file", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access requirements file %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "requirements file %s is a directory", path).
			WithDetail("path", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read requirements file %s", path).
			WithDetail("path", path)
	}
	return ParseRequirements(bytes.NewReader(data), commentPrefix)
}
