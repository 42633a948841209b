// Package debugger implements the interactive command-line debugger:
// a dispatch table matched by unique command-name prefix, in the style
// of the teacher's command/parser + command/reader pair, driving
// github.com/peterh/liner for line editing, history, and completion.
package debugger

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/fultonm/PR6/console"
	"github.com/fultonm/PR6/disasm"
	"github.com/fultonm/PR6/engine"
	"github.com/fultonm/PR6/loader"
)

// hexWord renders w as four upper-case hex digits, no leading "0x" and
// no trailing space, the width every register/PC/memory column in this
// debugger's output uses.
func hexWord(w uint16) string {
	return fmt.Sprintf("%04X", w)
}

// TraceInterval is the default number of instructions between paced
// progress lines during a free run (spec.md §5's expansion: observable
// without a separate UI thread). Overridden per-Debugger via SetTraceInterval.
const TraceInterval = 10000

type cmd struct {
	name    string
	min     int
	process func(d *Debugger, line *cmdLine) (bool, error)
}

var cmdList = []cmd{
	{name: "load", min: 1, process: cmdLoad},
	{name: "step", min: 2, process: cmdStep},
	{name: "run", min: 1, process: cmdRun},
	{name: "stop", min: 3, process: cmdStop},
	{name: "examine", min: 1, process: cmdExamine},
	{name: "deposit", min: 1, process: cmdDeposit},
	{name: "break", min: 3, process: cmdBreak},
	{name: "unbreak", min: 3, process: cmdUnbreak},
	{name: "registers", min: 3, process: cmdRegisters},
	{name: "reset", min: 3, process: cmdReset},
	{name: "quit", min: 1, process: cmdQuit},
}

// Debugger owns the engine, the trap console, and the set of
// breakpoints, which per spec §4.8 belong to the driver, never to the
// engine itself.
type Debugger struct {
	eng          *engine.Engine
	console      *console.Console
	breakpoints  map[uint16]bool
	traceEvery   int
	log          *slog.Logger
}

// New returns a Debugger wired to eng and th. A nil logger falls back
// to slog.Default().
func New(eng *engine.Engine, th *console.Console, log *slog.Logger) *Debugger {
	if log == nil {
		log = slog.Default()
	}
	return &Debugger{
		eng:         eng,
		console:     th,
		breakpoints: make(map[uint16]bool),
		traceEvery:  TraceInterval,
		log:         log,
	}
}

// SetTraceInterval overrides the default paced-progress interval.
func (d *Debugger) SetTraceInterval(n int) {
	if n > 0 {
		d.traceEvery = n
	}
}

// AddBreakpoint installs a breakpoint at addr, for use by callers that
// preload breakpoints from a session configuration file.
func (d *Debugger) AddBreakpoint(addr uint16) {
	d.breakpoints[addr] = true
}

// Run drives the REPL until the user quits or the input stream aborts.
func (d *Debugger) Run() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		return completeCmd(input)
	})

	d.eng.SetTrace(d.traceEvery, func(s engine.Snapshot) {
		fmt.Printf("... PC=%s (running)\n", hexWord(uint16(s.PC)))
	})

	for {
		input, err := line.Prompt("lc3> ")
		if err == nil {
			line.AppendHistory(input)
			quit, cmdErr := d.process(input)
			if cmdErr != nil {
				fmt.Println("Error: " + cmdErr.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		d.log.Error("debugger: error reading line", "error", err)
		return
	}
}

type cmdLine struct {
	line string
	pos  int
}

func (c *cmdLine) skipSpace() {
	for c.pos < len(c.line) && c.line[c.pos] == ' ' {
		c.pos++
	}
}

func (c *cmdLine) isEOL() bool { return c.pos >= len(c.line) }

func (c *cmdLine) word() string {
	c.skipSpace()
	start := c.pos
	for c.pos < len(c.line) && c.line[c.pos] != ' ' {
		c.pos++
	}
	return c.line[start:c.pos]
}

func (c *cmdLine) rest() string {
	c.skipSpace()
	return c.line[c.pos:]
}

// process executes one command line and reports whether the REPL
// should exit.
func (d *Debugger) process(line string) (bool, error) {
	cl := &cmdLine{line: line}
	name := cl.word()
	if name == "" {
		return false, nil
	}

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, fmt.Errorf("unknown command: %s", name)
	case 1:
		return match[0].process(d, cl)
	default:
		return false, fmt.Errorf("ambiguous command: %s", name)
	}
}

func matchCommand(c cmd, name string) bool {
	if len(name) > len(c.name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		if c.name[i] != name[i] {
			return false
		}
	}
	return len(name) >= c.min
}

func matchList(name string) []cmd {
	var out []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			out = append(out, c)
		}
	}
	return out
}

func completeCmd(input string) []string {
	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, input) {
			out = append(out, c.name+" ")
		}
	}
	return out
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

func cmdLoad(d *Debugger, line *cmdLine) (bool, error) {
	path := line.rest()
	if path == "" {
		return false, errors.New("load requires a file path")
	}
	if err := loader.Load(d.eng, path); err != nil {
		return false, err
	}
	fmt.Printf("loaded %s, starting at %s\n", path, hexWord(uint16(d.eng.StartingAddress())))
	return false, nil
}

func cmdStep(d *Debugger, line *cmdLine) (bool, error) {
	n := 1
	if word := line.word(); word != "" {
		v, err := strconv.Atoi(word)
		if err != nil || v < 1 {
			return false, fmt.Errorf("step count must be a positive integer: %q", word)
		}
		n = v
	}
	for i := 0; i < n && !d.eng.IsHalted(); i++ {
		d.eng.Step()
	}
	printState(d.eng)
	return false, nil
}

func cmdRun(d *Debugger, _ *cmdLine) (bool, error) {
	count := d.eng.RunUntil(func(pc engine.Word) bool {
		return d.breakpoints[uint16(pc)]
	})
	fmt.Printf("ran %d instructions\n", count)
	printState(d.eng)
	return false, nil
}

func cmdStop(_ *Debugger, _ *cmdLine) (bool, error) {
	return false, nil
}

func cmdExamine(d *Debugger, line *cmdLine) (bool, error) {
	spec := line.word()
	if spec == "" {
		return false, errors.New("examine requires an address")
	}
	start, end, err := parseAddrRange(spec)
	if err != nil {
		return false, err
	}
	for a := start; a <= end; a++ {
		w := d.eng.MemoryRead(engine.Word(a))
		fmt.Printf("%s: %s  %s\n", hexWord(a), hexWord(uint16(w)), disasm.Disassemble(w))
		if a == 0xFFFF {
			break
		}
	}
	return false, nil
}

func parseAddrRange(spec string) (uint16, uint16, error) {
	parts := strings.SplitN(spec, "-", 2)
	start, err := parseAddr(parts[0])
	if err != nil {
		return 0, 0, err
	}
	if len(parts) == 1 {
		return start, start, nil
	}
	end, err := parseAddr(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("range end %s before start %s", hexWord(end), hexWord(start))
	}
	return start, end, nil
}

func cmdDeposit(d *Debugger, line *cmdLine) (bool, error) {
	addrWord := line.word()
	valWord := line.word()
	if addrWord == "" || valWord == "" {
		return false, errors.New("deposit requires an address and a word")
	}
	addr, err := parseAddr(addrWord)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimPrefix(valWord, "0x"), "x"), 16, 16)
	if err != nil {
		return false, fmt.Errorf("invalid word %q", valWord)
	}
	d.eng.SetMemory(engine.Word(addr), engine.Word(v))
	return false, nil
}

func cmdBreak(d *Debugger, line *cmdLine) (bool, error) {
	addr, err := parseAddr(line.word())
	if err != nil {
		return false, err
	}
	d.breakpoints[addr] = true
	return false, nil
}

func cmdUnbreak(d *Debugger, line *cmdLine) (bool, error) {
	addr, err := parseAddr(line.word())
	if err != nil {
		return false, err
	}
	delete(d.breakpoints, addr)
	return false, nil
}

func cmdRegisters(d *Debugger, _ *cmdLine) (bool, error) {
	printState(d.eng)
	return false, nil
}

func cmdReset(d *Debugger, _ *cmdLine) (bool, error) {
	d.eng.Reset()
	fmt.Println("reset")
	return false, nil
}

func cmdQuit(_ *Debugger, _ *cmdLine) (bool, error) {
	return true, nil
}

func printState(e *engine.Engine) {
	s := e.Snapshot()
	for i, r := range s.Registers {
		fmt.Printf("R%d=%s ", i, hexWord(uint16(r)))
	}
	fmt.Printf("PC=%s N=%v Z=%v P=%v halted=%v\n", hexWord(uint16(s.PC)), s.CCN, s.CCZ, s.CCP, s.Halted)
}
