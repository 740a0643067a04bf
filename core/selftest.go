package core

import (
	"commaccel/mmio"
	"commaccel/protocol"
)

// Board holds the peripherals exercised by the self-test.
type Board struct {
	UART       *UART
	UARTSettle Delay
	SPI        *SPI
}

// NewBoard builds a Board from the two register windows. It panics if the
// windows overlap, since each peripheral must own its registers exclusively.
func NewBoard(uartRegs, spiRegs mmio.Block, uartSettle, spiSettle Delay) *Board {
	if uartRegs.Overlaps(spiRegs) {
		panic("UART and SPI register windows overlap")
	}
	return &Board{
		UART:       NewUART(uartRegs),
		UARTSettle: uartSettle,
		SPI:        NewSPI(spiRegs, spiSettle),
	}
}

// Report collects the results of one self-test run.
type Report struct {
	UART UARTResult
	SPI  SPIResult
}

// Passed reports whether both checks passed.
func (r Report) Passed() bool {
	return r.UART.Passed && r.SPI.Passed
}

// Record converts r to its wire form.
func (r Report) Record() protocol.Record {
	return protocol.Record{
		UARTPassed:   r.UART.Passed,
		UARTAttempts: uint8(r.UART.Attempts),
		UARTLast:     r.UART.Last,
		SPIPassed:    r.SPI.Passed,
		SPIValue:     r.SPI.Value,
	}
}

// ReportFromRecord is the inverse of Report.Record.
func ReportFromRecord(rec protocol.Record) Report {
	return Report{
		UART: UARTResult{Passed: rec.UARTPassed, Attempts: int(rec.UARTAttempts), Last: rec.UARTLast},
		SPI:  SPIResult{Passed: rec.SPIPassed, Value: rec.SPIValue},
	}
}

// RunSelfTest runs the UART check and then the SPI check, printing a
// verdict for each. A failing check never stops the run. The platform is
// initialised before the first register access and cleaned up after the
// last one.
func RunSelfTest(b *Board) Report {
	p := MustPlatform()
	p.Init()

	Println(ConsoleBanner)

	var r Report

	Println(LineEnd + ConsoleUARTHeader)
	r.UART = CheckUARTLoopback(b.UART, b.UARTSettle)
	if r.UART.Passed {
		Println(ConsoleUARTPass)
	} else {
		Println(ConsoleUARTFail + hex2(r.UART.Last) + ")")
	}

	Println(LineEnd + ConsoleSPIHeader)
	r.SPI = CheckSPILoopback(b.SPI)
	if r.SPI.Passed {
		Println(ConsoleSPIPass)
	} else {
		Println(ConsoleSPIFail)
	}

	Println(ConsoleDone)
	Println(protocol.FormatRecord(r.Record()))

	p.Cleanup()
	return r
}
