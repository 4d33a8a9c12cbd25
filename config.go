package rline

import (
	"os"
	"strings"

	"github.com/kk-code-lab/rline/internal/edit"
	"github.com/kk-code-lab/rline/internal/history"
)

// DefaultConfig returns the standard configuration over stdin and stdout
// with environment overrides applied: RLINE_PAGING=0 turns paging off,
// RLINE_ESC_ALT=0 makes a lone ESC revert the line, RLINE_SYSTEM_CLIPBOARD=1
// mirrors cuts to the desktop clipboard.
func DefaultConfig() Config {
	cfg := Config{
		Input:       os.Stdin,
		Output:      os.Stdout,
		Delimiters:  edit.DefaultDelimiters,
		Paging:      true,
		EscAsAlt:    true,
		SearchLimit: DefaultSearchLimit,
		History:     history.NewLog(),
	}
	applyEnv(&cfg, os.Getenv)
	return cfg
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v, ok := envBool(getenv("RLINE_PAGING")); ok {
		cfg.Paging = v
	}
	if v, ok := envBool(getenv("RLINE_ESC_ALT")); ok {
		cfg.EscAsAlt = v
	}
	if v, ok := envBool(getenv("RLINE_SYSTEM_CLIPBOARD")); ok {
		cfg.SystemClipboard = v
	}
}

func envBool(v string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
