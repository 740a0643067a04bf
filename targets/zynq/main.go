//go:build tinygo

// Bare-metal entry point for the Zynq-7000 PS. TinyGo has no built-in
// Cortex-A9 target, so building this needs a board target definition
// (target JSON, linker script and runtime hooks) supplied by the board
// support package.
package main

import (
	"commaccel/config"
	"commaccel/core"
	"commaccel/mmio"
)

func main() {
	bus := mmio.Volatile{}

	console := newPSUART(mmio.NewBlock(bus, psUART1Base, psUARTSize))
	core.SetConsoleWriter(console.WriteString)
	core.SetPlatform(&zynqPlatform{console: console})

	board := core.NewBoard(
		mmio.NewBlock(bus, config.DefaultUARTBase, config.DefaultBlockSize),
		mmio.NewBlock(bus, config.DefaultSPIBase, config.DefaultBlockSize),
		core.Spin(config.DefaultUARTSettleSpins),
		core.Spin(config.DefaultSPISettleSpins),
	)

	// The verdicts are on the console; the result never changes how we exit
	core.RunSelfTest(board)
}
