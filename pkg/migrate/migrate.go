package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

const (
	DefaultDir = "pkg/migrate/migrations"
	// Dialect is the only goose target; sqlite databases are schema-synced through gorm instead.
	Dialect = "postgres"
)

// Command is a cmd/migrate verb.
type Command string

const (
	CommandUp       Command = "up"
	CommandDown     Command = "down"
	CommandStatus   Command = "status"
	CommandVersion  Command = "version"
	CommandCreate   Command = "create"
	CommandValidate Command = "validate"
)

var commands = []Command{CommandUp, CommandDown, CommandStatus, CommandVersion, CommandCreate, CommandValidate}

// ParseCommand normalizes and checks a verb from the command line.
func ParseCommand(raw string) (Command, error) {
	cmd := Command(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range commands {
		if cmd == known {
			return cmd, nil
		}
	}
	return "", fmt.Errorf("unknown command %q", raw)
}

// NeedsDB reports whether the command talks to a database.
func (c Command) NeedsDB() bool {
	return c != CommandCreate && c != CommandValidate
}

// Runner drives goose against one postgres database and migrations directory.
type Runner struct {
	db  *sql.DB
	dir string
}

func NewRunner(db *sql.DB, dir string) (*Runner, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	if err := goose.SetDialect(Dialect); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	return &Runner{db: db, dir: dir}, nil
}

// Exec runs up, down or status. goose prints status output to stdout.
func (r *Runner) Exec(ctx context.Context, cmd Command) error {
	switch cmd {
	case CommandUp, CommandDown, CommandStatus:
	default:
		return fmt.Errorf("command %q is not a plain goose command", cmd)
	}
	if err := goose.RunContext(ctx, string(cmd), r.db, r.dir); err != nil {
		return fmt.Errorf("goose %s: %w", cmd, err)
	}
	return nil
}

// ToVersion migrates up or down until the database sits at target.
func (r *Runner) ToVersion(ctx context.Context, target string) error {
	if target == "" {
		return fmt.Errorf("target version is required")
	}
	want, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", target, err)
	}

	current, err := goose.GetDBVersionContext(ctx, r.db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == want:
		return nil
	case current < want:
		err = goose.UpToContext(ctx, r.db, r.dir, want)
	default:
		err = goose.DownToContext(ctx, r.db, r.dir, want)
	}
	if err != nil {
		return fmt.Errorf("goose migrate %d -> %d: %w", current, want, err)
	}
	return nil
}

// Run is shorthand for NewRunner followed by Exec.
func Run(ctx context.Context, db *sql.DB, dir string, cmd Command) error {
	r, err := NewRunner(db, dir)
	if err != nil {
		return err
	}
	return r.Exec(ctx, cmd)
}
