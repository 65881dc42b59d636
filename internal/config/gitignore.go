package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const gitignoreHeader = "# pkindex project-local data (auto-generated)\n"

// GitignoreEntries are the patterns a project .pkindex/ directory keeps out of
// version control: the .env files read at startup, log files, and the run
// exports written by "record --out-dir .pkindex/exports".
//
//nolint:gochecknoglobals // Fixed pattern list.
var GitignoreEntries = []string{".env", ".env.*", "*.log", "logs/", "exports/"}

// EnsureGitignore makes sure the .gitignore in dir lists every entry of
// GitignoreEntries. A missing file is created; an existing one keeps its
// content and gets the missing entries appended. It returns the entries it
// added, nil when the file was already complete.
func EnsureGitignore(dir string) ([]string, error) {
	path := filepath.Join(dir, ".gitignore")

	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		existing = nil
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	missing := missingEntries(existing)
	if len(missing) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	if len(existing) == 0 {
		buf.WriteString(gitignoreHeader)
	} else {
		buf.Write(existing)
		if !bytes.HasSuffix(existing, []byte("\n")) {
			buf.WriteByte('\n')
		}
	}
	for _, entry := range missing {
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}

	if err = os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	//nolint:gosec // .gitignore is meant to be shared.
	if err = os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return missing, nil
}

// missingEntries returns the GitignoreEntries not present as a line of content.
func missingEntries(content []byte) []string {
	present := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		present[strings.TrimSpace(sc.Text())] = true
	}

	var missing []string
	for _, entry := range GitignoreEntries {
		if !present[entry] {
			missing = append(missing, entry)
		}
	}
	return missing
}
