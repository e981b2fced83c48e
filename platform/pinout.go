// Package platform brings up the panel hardware and hands the resources to
// the panel wiring as a panel.Board.
package platform

import "panelcode-go/types"

type SPIPins struct {
	SCK, SDO, SDI int
	CS, RST, DC   int
	Hz            uint32
}

type UARTPins struct {
	TX, RX int
	Baud   uint32
}

// Pinout maps panel functions to GPIO numbers.
type Pinout struct {
	Button    int
	Keys      [types.NumKeys]int
	EncA      int
	EncB      int
	Pixels    int
	StatusLED int
	OLED      SPIPins
	Console   UARTPins
	Width     int16
	Height    int16
}

// MacroPad is the Adafruit MacroPad RP2040 layout. The console UART sits on
// the STEMMA QT connector.
var MacroPad = Pinout{
	Button:    0,
	Keys:      [types.NumKeys]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	EncA:      17,
	EncB:      18,
	Pixels:    19,
	StatusLED: 13,
	OLED:      SPIPins{SCK: 26, SDO: 27, SDI: 28, CS: 22, RST: 23, DC: 24, Hz: 10_000_000},
	Console:   UARTPins{TX: 20, RX: 21, Baud: 115200},
	Width:     128,
	Height:    64,
}
