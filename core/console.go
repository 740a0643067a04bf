package core

// ConsoleWriter is the platform function that puts text on the console
type ConsoleWriter func(string)

// LineEnd terminates every console line, as the board's terminal expects.
const LineEnd = "\n\r"

// Console text emitted by RunSelfTest
const (
	ConsoleBanner     = " ------------ COMMUNICATION ACCELERATOR-------------- "
	ConsoleUARTHeader = "[TEST 1] UART Loopback Check... "
	ConsoleSPIHeader  = "[TEST 2] SPI Loopback Check... "
	ConsoleUARTPass   = " -> SUCCESS! (Received 0x55)"
	ConsoleUARTFail   = " -> FAILED. (Last Data: 0x" // followed by two hex digits and ")"
	ConsoleSPIPass    = " -> SUCCESS! (Data Verified)"
	ConsoleSPIFail    = " -> FAILED."
	ConsoleDone       = "    ----------------- DONE------------------------- "
)

// consolePrint is the global console function (set by platform code)
var consolePrint ConsoleWriter = func(string) {}

// SetConsoleWriter sets the platform-specific console output function
func SetConsoleWriter(w ConsoleWriter) {
	if w == nil {
		w = func(string) {}
	}
	consolePrint = w
}

// Print writes s to the console as-is
func Print(s string) {
	consolePrint(s)
}

// Println writes s followed by LineEnd
func Println(s string) {
	consolePrint(s + LineEnd)
}
