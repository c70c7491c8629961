// Package cpu implements the CHIP-8 execution engine.
//
// The CPU owns the 16 general purpose registers V0-VF, the address
// register I, the program counter and the call stack. Every Step call
// fetches, decodes and executes exactly one 2-byte instruction against
// memory, timer, screen and keypad.
//
// VF doubles as the flag register, it receives the carry of additions,
// the inverted borrow of subtractions, the shifted-out bit of shifts and
// the collision flag of sprite draws.
package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/chip8emu/internal/keypad"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/chip8emu/internal/screen"
	"github.com/retroenv/chip8emu/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// StepInterval is the minimum real-time duration between two executed
// instructions.
const StepInterval = 2 * time.Millisecond

// flagRegister is the index of VF, the implicit carry/flag register.
const flagRegister = 0xF

var (
	// ErrUnknownOpcode is returned when an instruction word matches no
	// recognized opcode pattern. Execution can not continue past it, the
	// program image is corrupt or unsupported.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrStackUnderflow is returned when a return instruction is executed
	// with an empty call stack, the program returns without a prior call.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// CPU represents the CHIP-8 execution engine.
type CPU struct {
	v     [16]byte // general purpose registers V0-VF
	i     uint16   // address register, 12 significant bits by convention
	pc    uint16
	stack []uint16

	rand     *rand.Rand
	lastStep time.Time
	now      func() time.Time

	logger *log.Logger
	trace  bool
}

// New creates a new CPU with the program counter set to the program
// start address. If trace is enabled, every executed instruction is
// disassembled and logged at debug level.
func New(logger *log.Logger, trace bool) *CPU {
	c := &CPU{
		pc:     memory.ProgramStart,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		logger: logger,
		trace:  trace,
	}
	c.lastStep = c.now()
	return c
}

// SeedRandom reseeds the pseudo-random source used by the random byte
// instruction, allowing reproducible runs.
func (c *CPU) SeedRandom(seed int64) {
	c.rand = rand.New(rand.NewSource(seed))
}

// PC returns the current program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// Register returns the value of the general purpose register with the
// given index.
func (c *CPU) Register(index byte) byte {
	return c.v[index]
}

// CanStep returns true if the minimum instruction interval has elapsed
// since the last executed instruction.
func (c *CPU) CanStep() bool {
	return c.now().Sub(c.lastStep) > StepInterval
}

// Step fetches, decodes and executes one instruction. Callers have to
// check CanStep before calling it.
//
// Instructions are discriminated by the top 4 bits, with the low byte as
// secondary selector for the 0x0, 0xE and 0xF families and the low
// nibble for the 0x5, 0x8 and 0x9 families. An instruction word matching
// no pattern and a return with an empty call stack are fatal, the
// returned error wraps ErrUnknownOpcode or ErrStackUnderflow.
func (c *CPU) Step(mem *memory.Memory, tim *timer.Timer, scr *screen.Screen,
	keys *keypad.Keypad) error {

	c.lastStep = c.now()

	word := uint16(mem.Read(c.pc))<<8 | uint16(mem.Read(c.pc+1))
	if c.trace {
		c.traceInstruction(word)
	}

	nnn := word & 0x0FFF     // 12-bit address literal
	nn := byte(word)         // 8-bit immediate
	n := byte(word & 0x000F) // 4-bit literal
	x := byte(word>>8) & 0x0F
	y := byte(word>>4) & 0x0F

	switch word >> 12 {
	case 0x0:
		switch nn {
		case 0xE0: // CLS
			scr.Clear()
			c.pc += 2
		case 0xEE: // RET
			if len(c.stack) == 0 {
				return fmt.Errorf("pc $%04X opcode $%04X: %w", c.pc, word, ErrStackUnderflow)
			}
			c.pc = c.stack[len(c.stack)-1]
			c.stack = c.stack[:len(c.stack)-1]
		default:
			return fmt.Errorf("pc $%04X opcode $%04X: %w", c.pc, word, ErrUnknownOpcode)
		}

	case 0x1: // JP nnn
		c.pc = nnn

	case 0x2: // CALL nnn
		c.stack = append(c.stack, c.pc+2)
		c.pc = nnn

	case 0x3: // SE Vx, nn
		c.skipIf(c.v[x] == nn)

	case 0x4: // SNE Vx, nn
		c.skipIf(c.v[x] != nn)

	case 0x5: // SE Vx, Vy
		if n != 0x0 {
			return fmt.Errorf("pc $%04X opcode $%04X: %w", c.pc, word, ErrUnknownOpcode)
		}
		c.skipIf(c.v[x] == c.v[y])

	case 0x6: // LD Vx, nn
		c.v[x] = nn
		c.pc += 2

	case 0x7: // ADD Vx, nn - wraps silently, no carry flag
		c.v[x] += nn
		c.pc += 2

	case 0x8:
		if err := c.executeALU(word, n, x, y); err != nil {
			return err
		}

	case 0x9: // SNE Vx, Vy
		if n != 0x0 {
			return fmt.Errorf("pc $%04X opcode $%04X: %w", c.pc, word, ErrUnknownOpcode)
		}
		c.skipIf(c.v[x] != c.v[y])

	case 0xA: // LD I, nnn
		c.i = nnn
		c.pc += 2

	case 0xB: // JP V0, nnn - intentionally not masked to 12 bits
		c.pc = nnn + uint16(c.v[0x0])

	case 0xC: // RND Vx, nn
		c.v[x] = byte(c.rand.Intn(256)) & nn
		c.pc += 2

	case 0xD: // DRW Vx, Vy, n
		c.drawSprite(mem, scr, c.v[x], c.v[y], n)
		c.pc += 2

	case 0xE:
		switch nn {
		case 0x9E: // SKP Vx
			c.skipIf(keys.IsPressed(c.v[x]))
		case 0xA1: // SKNP Vx
			c.skipIf(!keys.IsPressed(c.v[x]))
		default:
			return fmt.Errorf("pc $%04X opcode $%04X: %w", c.pc, word, ErrUnknownOpcode)
		}

	case 0xF:
		if err := c.executePeripheral(mem, tim, keys, word, nn, x); err != nil {
			return err
		}
	}

	return nil
}

// executeALU executes the register-register 0x8 instruction family.
func (c *CPU) executeALU(word uint16, n, x, y byte) error {
	switch n {
	case 0x0: // LD Vx, Vy
		c.v[x] = c.v[y]

	case 0x1: // OR Vx, Vy
		c.v[x] |= c.v[y]

	case 0x2: // AND Vx, Vy
		c.v[x] &= c.v[y]

	case 0x3: // XOR Vx, Vy
		c.v[x] ^= c.v[y]

	case 0x4: // ADD Vx, Vy - VF = 1 on overflow
		sum := uint16(c.v[x]) + uint16(c.v[y])
		c.v[x] = byte(sum)
		c.v[flagRegister] = byte(sum >> 8)

	case 0x5: // SUB Vx, Vy - VF = 1 if no borrow
		noBorrow := c.v[x] >= c.v[y]
		c.v[x] -= c.v[y]
		c.v[flagRegister] = boolToByte(noBorrow)

	case 0x6: // SHR Vx - VF = shifted out bit
		c.v[flagRegister] = c.v[x] & 0x1
		c.v[x] >>= 1

	case 0x7: // SUBN Vx, Vy - VF = 1 if no borrow
		noBorrow := c.v[y] >= c.v[x]
		c.v[x] = c.v[y] - c.v[x]
		c.v[flagRegister] = boolToByte(noBorrow)

	case 0xE: // SHL Vx - VF = shifted out bit
		c.v[flagRegister] = c.v[x] >> 7
		c.v[x] <<= 1

	default:
		return fmt.Errorf("pc $%04X opcode $%04X: %w", c.pc, word, ErrUnknownOpcode)
	}

	c.pc += 2
	return nil
}

// executePeripheral executes the 0xF instruction family that interacts
// with the timer, keypad and memory.
func (c *CPU) executePeripheral(mem *memory.Memory, tim *timer.Timer,
	keys *keypad.Keypad, word uint16, nn, x byte) error {

	switch nn {
	case 0x07: // LD Vx, DT
		c.v[x] = tim.Get()

	case 0x0A: // LD Vx, K - blocks by refetching until a key is latched
		code, ok := keys.Pressed()
		if !ok {
			return nil
		}
		c.v[x] = code

	case 0x15: // LD DT, Vx
		tim.Set(c.v[x])

	case 0x18: // LD ST, Vx - sound timer accepted, no audio backend

	case 0x1E: // ADD I, Vx - intentionally not masked to 12 bits
		c.i += uint16(c.v[x])

	case 0x29: // LD F, Vx
		c.i = memory.SpriteAddress(c.v[x])

	case 0x33: // LD B, Vx - BCD decomposition
		value := c.v[x]
		mem.Write(c.i, value/100)
		mem.Write(c.i+1, (value%100)/10)
		mem.Write(c.i+2, value%10)

	case 0x55: // LD [I], Vx - stores V0 through Vx inclusive
		for i := byte(0); i <= x; i++ {
			mem.Write(c.i+uint16(i), c.v[i])
		}

	case 0x65: // LD Vx, [I] - loads V0 through Vx inclusive
		for i := byte(0); i <= x; i++ {
			c.v[i] = mem.Read(c.i + uint16(i))
		}

	default:
		return fmt.Errorf("pc $%04X opcode $%04X: %w", c.pc, word, ErrUnknownOpcode)
	}

	c.pc += 2
	return nil
}

// drawSprite composites a sprite of the given height from memory at the
// address register onto the screen at the given coordinates. VF is set
// to 1 if any previously set pixel was cleared, 0 otherwise. The y
// coordinate is advanced per row without pre-wrapping, the screen wraps
// it inside each row draw.
func (c *CPU) drawSprite(mem *memory.Memory, scr *screen.Screen, x, y, height byte) {
	erased := false
	for row := byte(0); row < height; row++ {
		b := mem.Read(c.i + uint16(row))
		if scr.DrawRow(b, int(x), int(y)+int(row)) {
			erased = true
		}
	}
	c.v[flagRegister] = boolToByte(erased)
}

// skipIf advances the program counter by 4 to skip the following
// instruction if the condition holds, by 2 otherwise.
func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += 4
	} else {
		c.pc += 2
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
