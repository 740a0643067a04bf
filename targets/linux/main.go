//go:build linux && !tinygo

// Runs the loopback self-test from a Linux userspace on the board, reaching
// the PL peripherals through /dev/mem.

package main

import (
	"flag"
	"os"

	"commaccel/config"
	"commaccel/core"
	"commaccel/mmio"

	"github.com/golang/glog"
)

var (
	devmem     = flag.String("devmem", mmio.DefaultDevMem, "Physical memory device")
	configPath = flag.String("config", "", "Board configuration JSON (default: reference bitstream layout)")
)

// hostedPlatform releases the register mappings once the checks are done
type hostedPlatform struct {
	mem *mmio.DevMem
}

func (p *hostedPlatform) Init() {
	glog.V(1).Info("self-test starting")
}

func (p *hostedPlatform) Cleanup() {
	if err := p.mem.Close(); err != nil {
		glog.Warningf("closing %s: %v", *devmem, err)
	}
}

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			glog.Exit(err)
		}
	}

	mem, err := mmio.OpenDevMem(*devmem)
	if err != nil {
		glog.Exit(err)
	}
	uartRegs, err := mem.Map(uintptr(cfg.UARTBase), uintptr(cfg.BlockSize))
	if err != nil {
		glog.Exit(err)
	}
	spiRegs, err := mem.Map(uintptr(cfg.SPIBase), uintptr(cfg.BlockSize))
	if err != nil {
		glog.Exit(err)
	}

	core.SetConsoleWriter(func(s string) { os.Stdout.WriteString(s) })
	core.SetPlatform(&hostedPlatform{mem: mem})

	board := core.NewBoard(uartRegs, spiRegs, core.Sleep(cfg.UARTSettle), core.Sleep(cfg.SPISettle))
	report := core.RunSelfTest(board)
	glog.V(1).Infof("self-test report: %+v", report)
}
