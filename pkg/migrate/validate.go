package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

var requiredMarkers = []string{"-- +goose Up", "-- +goose Down"}

// ValidateDir checks every .sql file in dir for a well-formed name, a unique
// version and both goose markers. All problems are reported together.
func ValidateDir(dir string) error {
	_, err := Versions(dir)
	return err
}

// Versions returns the sorted migration versions found in dir, or the combined
// validation errors.
func Versions(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	var errs error
	owners := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name))
			continue
		}
		if prev, ok := owners[m[1]]; ok {
			errs = multierr.Append(errs, fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name))
			continue
		}
		owners[m[1]] = name
		errs = multierr.Append(errs, checkMarkers(filepath.Join(dir, name)))
	}
	if errs != nil {
		return nil, errs
	}
	if len(owners) == 0 {
		return nil, fmt.Errorf("no migrations found in %q", dir)
	}

	versions := make([]string, 0, len(owners))
	for v := range owners {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, nil
}

func checkMarkers(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file %q: %w", path, err)
	}
	var errs error
	for _, marker := range requiredMarkers {
		if !strings.Contains(string(b), marker) {
			errs = multierr.Append(errs, fmt.Errorf("migration %q missing %q", filepath.Base(path), marker))
		}
	}
	return errs
}
