// Package loader reads LC-3 object files into an engine.Engine.
//
// The format is ASCII text, one 4-hex-digit word per line: the first
// non-blank line is the starting address, every line after it is a
// word written to consecutive memory addresses starting there.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fultonm/PR6/engine"
)

// Load opens path, parses it as an LC-3 object file, and writes every
// word into eng starting at the address given by the file's first
// line. It calls eng.SetStartingAddress with that address and
// eng.MarkFileLoaded on success. The engine is left untouched if Load
// returns an error (spec §7 item 5: loader errors are surfaced by the
// loader, not folded into the engine's own contract-violation path).
func Load(eng *engine.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	words, start, err := parse(f)
	if err != nil {
		return fmt.Errorf("loader: %s: %w", path, err)
	}

	eng.SetStartingAddress(start)
	addr := start
	for _, w := range words {
		eng.SetMemory(addr, w)
		addr++
	}
	eng.MarkFileLoaded()
	return nil
}

// parse scans r line by line. Blank lines are skipped; every
// surviving line must be exactly a 4-hex-digit word. The first such
// line is returned separately as the starting address.
func parse(r io.Reader) ([]engine.Word, engine.Word, error) {
	scanner := bufio.NewScanner(r)

	var start engine.Word
	var words []engine.Word
	haveStart := false
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		raw, err := strconv.ParseUint(line, 16, 16)
		if err != nil || len(line) != 4 {
			return nil, 0, fmt.Errorf("line %d: not a 4-digit hex word: %q", lineNumber, line)
		}
		w := engine.Word(raw)

		if !haveStart {
			start = w
			haveStart = true
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	if !haveStart {
		return nil, 0, fmt.Errorf("empty object file")
	}
	return words, start, nil
}
