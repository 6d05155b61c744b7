package bf

import (
	"io"

	"github.com/brainbang-lang/brainbang/internal/diagnostics"
)

// InitialTapeSize is how many cells the tape starts with. The tape
// grows to the right on demand; the left edge is fixed at index 0.
const InitialTapeSize = 256

// TapeGrowthIncrement is how many zeroed cells are appended when the
// pointer advances past the current extent.
const TapeGrowthIncrement = 256

// Machine executes one loaded program against its own tape. Nothing
// is shared between machines, so any number of programs can run in the
// same process without interference.
type Machine struct {
	program *Program

	tape []byte
	ptr  int
	ip   int

	input  io.Reader
	output io.Writer

	// stepLimit caps how many opcodes may execute; 0 means unbounded.
	// The host sets this to guard against programs whose loop cell
	// never reaches zero.
	stepLimit uint64
	steps     uint64

	eof bool
}

func New(program *Program) *Machine {
	return &Machine{
		program: program,
		tape:    make([]byte, InitialTapeSize),
	}
}

func (m *Machine) SetInput(r io.Reader)      { m.input = r }
func (m *Machine) SetOutput(w io.Writer)     { m.output = w }
func (m *Machine) SetStepLimit(limit uint64) { m.stepLimit = limit }

// Steps returns how many opcodes have executed so far.
func (m *Machine) Steps() uint64 { return m.steps }

// Run executes the program to completion. The machine halts when the
// instruction pointer runs off the end of the stream; there is no halt
// opcode. Cells wrap modulo 256 in both directions. Reading at end of
// input leaves the cell unchanged.
func (m *Machine) Run() error {
	for m.ip < m.program.Len() {
		if m.stepLimit > 0 && m.steps >= m.stepLimit {
			return diagnostics.NewRuntimeError(
				diagnostics.ErrR003, m.program.offsets[m.ip],
				"program exceeded %d steps", m.stepLimit,
			)
		}
		m.steps++

		switch m.program.ops[m.ip] {
		case OpInc:
			m.tape[m.ptr]++
		case OpDec:
			m.tape[m.ptr]--
		case OpRight:
			m.ptr++
			if m.ptr >= len(m.tape) {
				m.tape = append(m.tape, make([]byte, TapeGrowthIncrement)...)
			}
		case OpLeft:
			if m.ptr == 0 {
				return diagnostics.NewRuntimeError(
					diagnostics.ErrR002, m.program.offsets[m.ip],
					"'<' at the left edge of the tape",
				)
			}
			m.ptr--
		case OpOut:
			if m.output != nil {
				if _, err := m.output.Write([]byte{m.tape[m.ptr]}); err != nil {
					return err
				}
			}
		case OpIn:
			if err := m.readCell(); err != nil {
				return err
			}
		case OpOpen:
			if m.tape[m.ptr] == 0 {
				m.ip = m.program.jumps[m.ip]
			}
		case OpClose:
			if m.tape[m.ptr] != 0 {
				m.ip = m.program.jumps[m.ip]
			}
		}

		m.ip++
	}

	return nil
}

// readCell reads one byte of input into the current cell. Once the
// input is exhausted the cell is left as it was; this is the
// conventional EOF policy and is covered by tests, not an error.
func (m *Machine) readCell() error {
	if m.eof || m.input == nil {
		return nil
	}

	var buf [1]byte
	for {
		n, err := m.input.Read(buf[:])
		if n > 0 {
			m.tape[m.ptr] = buf[0]
			return nil
		}
		if err == io.EOF {
			m.eof = true
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Execute loads and runs an instruction stream in one call. This is
// the host-facing entry point: input and output are whatever streams
// the host supplies, stepLimit of 0 means run until the program halts.
func Execute(code string, input io.Reader, output io.Writer, stepLimit uint64) error {
	program, derr := Load(code)
	if derr != nil {
		return derr
	}

	m := New(program)
	m.SetInput(input)
	m.SetOutput(output)
	m.SetStepLimit(stepLimit)
	return m.Run()
}
