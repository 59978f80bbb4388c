package hiermatch

import (
	"errors"
	"strings"
	"time"
)

// DefaultTolerance is the date tolerance used when the caller does not
// configure one.
const DefaultTolerance = 3 * time.Second

// Config enumerates the recognized matching options. PhoneKey and DateKey are
// optional; empty means the corresponding escalation tier is unavailable.
type Config struct {
	PrimaryKey string
	PhoneKey   string
	DateKey    string
	Tolerance  time.Duration
}

// Validate checks the config once at the boundary so the matcher itself can
// assume a well-formed configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.PrimaryKey) == "" {
		return errors.New("primary key column is required")
	}
	if c.Tolerance < 0 {
		return errors.New("date tolerance must be non-negative")
	}
	return nil
}

func (c Config) hasPhone() bool { return c.PhoneKey != "" }
func (c Config) hasDate() bool  { return c.DateKey != "" }
