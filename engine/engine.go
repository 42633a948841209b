package engine

// DefaultStackBase is the initial value loaded into R6, the conventional
// stack pointer, on Reset. It matches the LC-3 OS's supervisor stack area.
const DefaultStackBase Word = 0xFE00

// DefaultStackTopLimit is the stack low-water mark: PUSH reports overflow
// via R5 when R6 is already below it, so the lowest address a PUSH writes
// is DefaultStackTopLimit-1.
const DefaultStackTopLimit Word = DefaultStackBase - 0x200

// Config configures a new Engine. Zero-value fields take the package
// defaults (see DefaultBase, DefaultSize, DefaultStackBase,
// DefaultStackTopLimit).
type Config struct {
	Base          Word
	Size          int
	StackBase     Word
	StackTopLimit Word

	// Trap is called out to by the EXECUTE microphase of TRAP
	// instructions (spec §4.6). If nil, NewLoggingTrapHandler(nil) is
	// used, which logs every vector and halts on TRAP x25.
	Trap TrapHandler
}

func (c *Config) applyDefaults() {
	if c.Base == 0 {
		c.Base = DefaultBase
	}
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.StackBase == 0 {
		c.StackBase = DefaultStackBase
	}
	if c.StackTopLimit == 0 {
		c.StackTopLimit = DefaultStackTopLimit
	}
	if c.Trap == nil {
		c.Trap = NewLoggingTrapHandler(nil)
	}
}

// Engine is the LC-3 instruction-execution engine: the register file,
// memory, ALU, and microsequencer, owned exclusively by whatever driver
// creates it (spec §3, "Ownership & lifecycle").
type Engine struct {
	regs registerFile
	mem  memory
	alu  alu

	cur          decoded
	branchTaken  bool
	stackBase    Word
	stackTop     Word
	startAddr    Word
	halted       bool
	fileLoaded   bool
	trap         TrapHandler
	traceEvery   int
	onTrace      func(Snapshot)
}

// New creates an Engine per cfg and resets it to its initial state.
func New(cfg Config) *Engine {
	cfg.applyDefaults()
	e := &Engine{
		mem:       newMemory(cfg.Base, cfg.Size),
		stackBase: cfg.StackBase,
		stackTop:  cfg.StackTopLimit,
		trap:      cfg.Trap,
	}
	e.Reset()
	return e
}

// Reset returns every field to its initial value without reallocating
// memory (spec §3, "Ownership & lifecycle").
func (e *Engine) Reset() {
	e.mem.reset()
	e.regs.reset(e.mem.base)
	e.alu.reset()
	e.regs.r[6] = e.stackBase
	e.cur = decoded{}
	e.branchTaken = false
	e.startAddr = e.mem.base
	e.halted = false
	e.fileLoaded = false
}

// SetStartingAddress records the loader's starting address and sets PC to
// it (spec §6).
func (e *Engine) SetStartingAddress(addr Word) {
	e.startAddr = addr
	e.regs.pc = addr
}

// StartingAddress returns the address last passed to SetStartingAddress.
func (e *Engine) StartingAddress() Word { return e.startAddr }

// IsHalted reports whether TRAP x25 has halted the engine.
func (e *Engine) IsHalted() bool { return e.halted }

// ToggleHalted flips the halted flag. Step never clears the flag; only
// Reset and ToggleHalted do.
func (e *Engine) ToggleHalted() { e.halted = !e.halted }

// IsFileLoaded reports whether an object file has been loaded since the
// last Reset.
func (e *Engine) IsFileLoaded() bool { return e.fileLoaded }

// ToggleFileLoaded flips the file-loaded flag. The loader does not use it;
// a successful loader.Load sets the flag through MarkFileLoaded.
func (e *Engine) ToggleFileLoaded() { e.fileLoaded = !e.fileLoaded }

// MarkFileLoaded sets the file-loaded flag to loaded, used by loader.Load
// on success.
func (e *Engine) MarkFileLoaded() { e.fileLoaded = true }

// SetTrace installs a callback invoked by RunUntil every interval
// instructions, so a free-running driver can paint progress without
// polling. interval <= 0 disables tracing.
func (e *Engine) SetTrace(interval int, cb func(Snapshot)) {
	e.traceEvery = interval
	e.onTrace = cb
}
