package cpu

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// traceInstruction disassembles the instruction word and logs it at
// debug level. The opcode table lookup is diagnostic only, execution
// uses its own decoder.
func (c *CPU) traceInstruction(word uint16) {
	name, params := disassemble(word)
	if name == "" {
		c.logger.Debug("Executing unknown instruction",
			log.Hex("pc", c.pc),
			log.Hex("opcode", word))
		return
	}

	code := name
	if params != "" {
		code = name + " " + params
	}
	c.logger.Debug("Executing instruction",
		log.Hex("pc", c.pc),
		log.Hex("opcode", word),
		log.String("code", code))
}

// disassemble matches the instruction word against the CHIP-8 opcode
// table and returns the mnemonic and formatted parameters. It returns an
// empty name if the word matches no opcode pattern.
func disassemble(word uint16) (string, string) {
	firstNibble := (word & 0xF000) >> 12
	var instruction *chip8.Instruction
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			instruction = op.Instruction
			break
		}
	}
	if instruction == nil {
		return "", ""
	}
	return instruction.Name, formatParams(instruction.Name, word)
}

// formatParams formats the operands of an instruction for display.
func formatParams(name string, word uint16) string {
	x := (word & 0x0F00) >> 8
	y := (word & 0x00F0) >> 4

	switch name {
	case chip8.ClsInst.Name, chip8.RetInst.Name:
		return ""
	case chip8.JpInst.Name:
		if word&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", word&0x0FFF)
		}
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.CallInst.Name:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.SeInst.Name, chip8.SneInst.Name:
		if word&0xF000 == 0x5000 || word&0xF000 == 0x9000 {
			return fmt.Sprintf("V%X, V%X", x, y)
		}
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case chip8.LdInst.Name:
		return formatLoadParams(word, x, y)
	case chip8.AddInst.Name:
		switch word & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
		case 0x8000:
			return fmt.Sprintf("V%X, V%X", x, y)
		default: // Fx1E
			return fmt.Sprintf("I, V%X", x)
		}
	case chip8.OrInst.Name, chip8.AndInst.Name, chip8.XorInst.Name, chip8.SubInst.Name, chip8.SubnInst.Name:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.ShrInst.Name, chip8.ShlInst.Name:
		return fmt.Sprintf("V%X", x)
	case chip8.RndInst.Name:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case chip8.DrwInst.Name:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, word&0x000F)
	case chip8.SkpInst.Name, chip8.SknpInst.Name:
		return fmt.Sprintf("V%X", x)
	}
	return ""
}

// formatLoadParams formats the operands of the many LD instruction forms.
func formatLoadParams(word, x, y uint16) string {
	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	case 0xF000:
		switch word & 0x00FF {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}
