// Package serial opens the board's console UART on the workstation.
package serial

import (
	"io"
)

// Port is the console connection used by the monitor. Besides the native
// port, tests substitute in-memory pipes.
type Port interface {
	io.ReadWriteCloser

	// Flush discards any data the driver has buffered
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB1", "COM4")
	Device string

	// Baud rate of the PS UART console
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the console settings of the reference board image
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
