package cpu

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// instructionName looks up the mnemonic for an instruction word in the
// CHIP-8 opcode tables. Returns an empty string for unknown patterns.
func instructionName(opcode uint16) string {
	firstNibble := int(opcode >> 12)
	for _, op := range chip8.Opcodes[firstNibble] {
		if op.Info.Mask&opcode == op.Info.Value {
			if op.Instruction == nil {
				return ""
			}
			return op.Instruction.Name
		}
	}
	return ""
}

// traceInstruction logs the instruction about to execute. Unknown
// opcodes are logged as well, they execute as no-ops but usually mean
// the interpreter wandered into sprite data.
func (c *CPU) traceInstruction(addr, opcode uint16) {
	name := instructionName(opcode)
	if name == "" {
		c.logger.Debug("Unknown opcode",
			log.Hex("address", addr),
			log.Hex("opcode", opcode))
		return
	}
	c.logger.Debug("Executing",
		log.Hex("address", addr),
		log.Hex("opcode", opcode),
		log.String("instruction", name))
}
