// Command accel-monitor watches the Communication Accelerator console while
// the board runs its power-on self-test and reports the outcome as an exit
// status: 0 when both loopback checks pass, 1 when either fails, 2 when the
// run could not be observed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"commaccel/core"
	"commaccel/host/monitor"
	"commaccel/host/serial"

	"github.com/golang/glog"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitError = 2
)

var (
	device  = flag.String("device", "/dev/ttyUSB1", "Serial device connected to the board console")
	baud    = flag.Int("baud", 115200, "Console baud rate")
	timeout = flag.Duration("timeout", 30*time.Second, "How long to wait for the self-test to finish")
	quiet   = flag.Bool("quiet", false, "Do not echo console output")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	defer glog.Flush()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		glog.Warningf("flush %s: %v", *device, err)
	}
	glog.Infof("watching %s at %d baud, timeout %s", *device, *baud, *timeout)

	fmt.Printf("Waiting for self-test on %s (reset the board now)...\n", *device)

	var echo io.Writer = os.Stdout
	if *quiet {
		echo = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	res, err := monitor.New(port, echo).Wait(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	printSummary(res)
	if res.Report.Passed() {
		return exitPass
	}
	return exitFail
}

func printSummary(res monitor.Result) {
	r := res.Report

	fmt.Println("\n=== Self-test summary ===")
	if r.UART.Passed {
		if res.Exact {
			fmt.Printf("UART loopback: PASS (attempt %d of %d)\n", r.UART.Attempts, core.UARTMaxAttempts)
		} else {
			fmt.Println("UART loopback: PASS")
		}
	} else {
		fmt.Printf("UART loopback: FAIL (last data 0x%02X)\n", r.UART.Last)
	}

	if r.SPI.Passed {
		fmt.Print("SPI loopback:  PASS")
	} else {
		fmt.Print("SPI loopback:  FAIL")
	}
	if res.Exact {
		fmt.Printf(" (read 0x%02X)", r.SPI.Value)
	}
	fmt.Println()

	if !res.Exact {
		fmt.Println("(no result record received; summary derived from console text)")
	}
	fmt.Println("=========================")
}
