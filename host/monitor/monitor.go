// Package monitor follows a self-test run on the board console and turns
// it into a core.Report.
//
// The exact result comes from the framed record printed after the done
// line. Firmware that predates the record, or a record damaged on the
// wire, falls back to the human-readable verdict lines.
package monitor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"commaccel/core"
	"commaccel/protocol"

	"github.com/golang/glog"
)

// ErrIncomplete is returned when the deadline passes before the done line.
var ErrIncomplete = errors.New("monitor: self-test did not complete")

// Defaults for Monitor timing
const (
	DefaultTrailerWait = 500 * time.Millisecond
	DefaultIdlePoll    = 10 * time.Millisecond
)

// Result is the outcome of one observed run.
type Result struct {
	Report core.Report

	// Exact is true when Report was decoded from the result record. When
	// false, UART attempts are unknown on success and SPI values are unknown.
	Exact bool
}

// Monitor reads console text from a board.
type Monitor struct {
	port io.Reader
	echo io.Writer

	// TrailerWait bounds how long to wait for the result record once the
	// done line has been seen
	TrailerWait time.Duration

	// IdlePoll is the pause after a read that returned no data
	IdlePoll time.Duration
}

// New returns a Monitor reading from port. Every console line is copied to
// echo unless echo is nil.
func New(port io.Reader, echo io.Writer) *Monitor {
	return &Monitor{
		port:        port,
		echo:        echo,
		TrailerWait: DefaultTrailerWait,
		IdlePoll:    DefaultIdlePoll,
	}
}

// Wait blocks until a complete run has been observed or ctx is done.
func (m *Monitor) Wait(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string, 16)
	errc := make(chan error, 1)
	go m.readLines(ctx, lines, errc)

	var (
		p       parser
		timer   *time.Timer
		trailer <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				if p.done {
					return p.result(), nil
				}
				select {
				case err := <-errc:
					return Result{}, fmt.Errorf("monitor: console read failed: %w", err)
				default:
					return Result{}, fmt.Errorf("%w: %v", ErrIncomplete, ctx.Err())
				}
			}
			if m.echo != nil {
				fmt.Fprintln(m.echo, line)
			}
			if p.feed(line) && timer != nil {
				// The board restarted; the new run needs its own done line
				timer.Stop()
				timer, trailer = nil, nil
			}
			if p.exact {
				return p.result(), nil
			}
			if p.done && trailer == nil {
				timer = time.NewTimer(m.TrailerWait)
				trailer = timer.C
			}

		case <-trailer:
			if !p.done {
				timer, trailer = nil, nil
				continue
			}
			glog.Warning("monitor: no valid result record after done line, using console verdicts")
			return p.result(), nil

		case <-ctx.Done():
			if p.done {
				return p.result(), nil
			}
			return Result{}, fmt.Errorf("%w: %v", ErrIncomplete, ctx.Err())
		}
	}
}

// readLines splits the console stream on '\n'. The board terminates lines
// with "\n\r", so stray carriage returns are trimmed from both ends. A read
// returning no data (serial timeout or EOF) is treated as an idle line.
func (m *Monitor) readLines(ctx context.Context, lines chan<- string, errc chan<- error) {
	defer close(lines)

	buf := make([]byte, 256)
	var pending []byte
	for {
		n, err := m.port.Read(buf)
		pending = append(pending, buf[:n]...)

		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			line := strings.Trim(string(pending[:i]), "\r")
			pending = pending[i+1:]
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}

		switch {
		case err == io.EOF || (err == nil && n == 0):
			select {
			case <-ctx.Done():
				return
			case <-time.After(m.IdlePoll):
			}
		case err != nil:
			errc <- err
			return
		}
	}
}

type section int

const (
	sectionNone section = iota
	sectionUART
	sectionSPI
)

// parser tracks the console state of a single run
type parser struct {
	section section
	report  core.Report
	done    bool
	exact   bool
}

var (
	banner     = strings.TrimSpace(core.ConsoleBanner)
	uartHeader = strings.TrimSpace(core.ConsoleUARTHeader)
	spiHeader  = strings.TrimSpace(core.ConsoleSPIHeader)
	uartPass   = strings.TrimSpace(core.ConsoleUARTPass)
	uartFail   = strings.TrimSpace(core.ConsoleUARTFail)
	spiPass    = strings.TrimSpace(core.ConsoleSPIPass)
	spiFail    = strings.TrimSpace(core.ConsoleSPIFail)
	doneLine   = strings.TrimSpace(core.ConsoleDone)
	recordMark = strings.TrimSpace(protocol.RecordPrefix)
)

// feed consumes one console line and reports whether it was a banner, which
// discards everything seen so far.
func (p *parser) feed(line string) (restarted bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
	case line == banner:
		// A banner means the board (re)started; forget anything earlier
		*p = parser{}
		return true
	case line == uartHeader:
		p.section = sectionUART
	case line == spiHeader:
		p.section = sectionSPI
	case line == doneLine:
		p.done = true
	case strings.HasPrefix(line, recordMark):
		rec, err := protocol.ParseRecord(line)
		if err != nil {
			glog.Warningf("monitor: ignoring result record %q: %v", line, err)
			return false
		}
		p.report = core.ReportFromRecord(rec)
		p.done = true
		p.exact = true
	case p.section == sectionUART:
		p.uartVerdict(line)
	case p.section == sectionSPI:
		p.spiVerdict(line)
	default:
		glog.V(1).Infof("monitor: unrecognised line %q", line)
	}
	return false
}

func (p *parser) uartVerdict(line string) {
	switch {
	case line == uartPass:
		p.report.UART = core.UARTResult{Passed: true, Last: core.UARTTestPattern}
	case strings.HasPrefix(line, uartFail):
		digits := strings.TrimSuffix(line[len(uartFail):], ")")
		v, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			glog.Warningf("monitor: bad UART verdict %q: %v", line, err)
		}
		p.report.UART = core.UARTResult{Attempts: core.UARTMaxAttempts, Last: uint8(v)}
	default:
		glog.V(1).Infof("monitor: unrecognised UART line %q", line)
	}
}

func (p *parser) spiVerdict(line string) {
	switch line {
	case spiPass:
		p.report.SPI = core.SPIResult{Passed: true}
	case spiFail:
		p.report.SPI = core.SPIResult{}
	default:
		glog.V(1).Infof("monitor: unrecognised SPI line %q", line)
	}
}

func (p *parser) result() Result {
	return Result{Report: p.report, Exact: p.exact}
}
