// Package simconfig parses the session configuration file: a small,
// line-oriented, '#'-comment grammar in the style of the teacher's
// config/configparser, reduced to the four keys this simulator needs.
package simconfig

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds one parsed session configuration.
type Config struct {
	LogFile     string   // "logfile = path"
	Object      string   // "object = path" — default file to auto-load
	Breakpoints []uint16 // one or more repeatable "breakpoint = xADDR" lines
	TraceLimit  int      // "tracelimit = N" — paced RunUntil interval
}

// Load reads and parses the configuration file at path. Malformed lines
// return a descriptive error naming the line number rather than being
// silently skipped.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	var cfg Config
	scanner := bufio.NewScanner(f)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		// key = value, or key value; either spelling is accepted.
		if len(fields) >= 2 && fields[1] == "=" {
			fields = append(fields[:1], fields[2:]...)
		}
		if len(fields) != 2 {
			return Config{}, fmt.Errorf("simconfig: line %d: expected 'key = value', got %q", lineNumber, line)
		}
		key, value := strings.ToLower(fields[0]), fields[1]

		switch key {
		case "logfile":
			cfg.LogFile = value
		case "object":
			cfg.Object = value
		case "breakpoint":
			addr, err := parseAddr(value)
			if err != nil {
				return Config{}, fmt.Errorf("simconfig: line %d: %w", lineNumber, err)
			}
			cfg.Breakpoints = append(cfg.Breakpoints, addr)
		case "tracelimit":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Config{}, fmt.Errorf("simconfig: line %d: tracelimit must be a number: %w", lineNumber, err)
			}
			cfg.TraceLimit = n
		default:
			return Config{}, fmt.Errorf("simconfig: line %d: unknown key %q", lineNumber, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseAddr accepts either a bare hex address ("3000") or an "x"- or
// "0x"-prefixed one ("x3000", "0x3000"), matching the debugger's own
// address-literal grammar.
func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}
