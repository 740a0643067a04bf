//go:build !tinygo

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	ErrNoBase        = errors.New("peripheral base address is zero")
	ErrMisaligned    = errors.New("peripheral base address is not word aligned")
	ErrBlockTooSmall = errors.New("block size does not cover the register map")
	ErrOverlap       = errors.New("UART and SPI windows overlap")
)

// Address is a physical address. In JSON it may be a number or a string in
// any base strconv understands ("0x43C00000").
type Address uint32

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n uint32
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("address must be a number or string: %w", err)
		}
		*a = Address(n)
		return nil
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", s, err)
	}
	*a = Address(n)
	return nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + strconv.FormatUint(uint64(a), 16))
}

// Duration is a time.Duration written as "10ms" in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// BoardConfig describes where the peripherals live and how long to wait for
// the loopback path to settle.
type BoardConfig struct {
	UARTBase  Address `json:"uart_base"`
	SPIBase   Address `json:"spi_base"`
	BlockSize uint32  `json:"block_size"`

	UARTSettleSpins uint32 `json:"uart_settle_spins"` // bare metal
	SPISettleSpins  uint32 `json:"spi_settle_spins"`  // bare metal

	UARTSettle Duration `json:"uart_settle"` // hosted
	SPISettle  Duration `json:"spi_settle"`  // hosted
}

// DefaultConfig returns the layout of the reference bitstream.
func DefaultConfig() *BoardConfig {
	cfg := &BoardConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig parses a JSON configuration, fills in missing values and
// validates the result.
func LoadConfig(jsonData []byte) (*BoardConfig, error) {
	var cfg BoardConfig
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and parses the configuration at path.
func LoadFile(path string) (*BoardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that both windows are usable and disjoint.
func (c *BoardConfig) Validate() error {
	for _, base := range []Address{c.UARTBase, c.SPIBase} {
		if base == 0 {
			return ErrNoBase
		}
		if base%4 != 0 {
			return fmt.Errorf("%w: 0x%x", ErrMisaligned, uint32(base))
		}
	}
	if c.BlockSize < minBlockSize {
		return fmt.Errorf("%w: 0x%x", ErrBlockTooSmall, c.BlockSize)
	}

	uartEnd := uint64(c.UARTBase) + uint64(c.BlockSize)
	spiEnd := uint64(c.SPIBase) + uint64(c.BlockSize)
	if uint64(c.UARTBase) < spiEnd && uint64(c.SPIBase) < uartEnd {
		return ErrOverlap
	}
	return nil
}

// applyDefaults fills in missing configuration values
func applyDefaults(c *BoardConfig) {
	if c.UARTBase == 0 {
		c.UARTBase = DefaultUARTBase
	}
	if c.SPIBase == 0 {
		c.SPIBase = DefaultSPIBase
	}
	if c.BlockSize == 0 {
		c.BlockSize = DefaultBlockSize
	}

	if c.UARTSettleSpins == 0 {
		c.UARTSettleSpins = DefaultUARTSettleSpins
	}
	if c.SPISettleSpins == 0 {
		c.SPISettleSpins = DefaultSPISettleSpins
	}

	if c.UARTSettle == 0 {
		c.UARTSettle = Duration(DefaultUARTSettle)
	}
	if c.SPISettle == 0 {
		c.SPISettle = Duration(DefaultSPISettle)
	}
}
