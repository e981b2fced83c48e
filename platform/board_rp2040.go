//go:build rp2040 || rp2350

package platform

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/sh1106"
	"tinygo.org/x/drivers/ws2812"

	"panelcode-go/services/display"
	"panelcode-go/services/input"
	"panelcode-go/services/panel"
	"panelcode-go/services/rotary"
	"panelcode-go/types"
	"panelcode-go/x/logx"
)

// rp2Pin adapts machine.Pin to the panel's pin interfaces.
type rp2Pin struct {
	p machine.Pin
}

func inputPin(n int) *rp2Pin {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &rp2Pin{p: p}
}

func outputPin(n int, initial bool) *rp2Pin {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Set(initial)
	return &rp2Pin{p: p}
}

func (r *rp2Pin) Get() bool   { return r.p.Get() }
func (r *rp2Pin) Set(on bool) { r.p.Set(on) }
func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

// SetIRQ fires on both edges. The RP2 port provides SetInterrupt with PinChange flags.
func (r *rp2Pin) SetIRQ(handler func()) error {
	return r.p.SetInterrupt(machine.PinToggle, func(machine.Pin) { handler() })
}

// consoleWriter adapts uartx to io.Writer.
type consoleWriter struct{ u *uartx.UART }

func (w consoleWriter) Write(b []byte) (int, error) { return w.u.Write(b) }

// NewBoard brings up the MacroPad: inputs, encoder interrupts, OLED, pixels,
// status LED and the console UART.
func NewBoard(cfg types.PanelConfig) (panel.Board, error) {
	po := MacroPad
	log := logx.New("platform")

	keys := make([]input.Pin, types.NumKeys)
	for i, n := range po.Keys {
		keys[i] = inputPin(n)
	}
	src, err := rotary.NewPinSource(inputPin(po.EncA), inputPin(po.EncB), 16)
	if err != nil {
		return panel.Board{}, err
	}

	spi := machine.SPI1
	if err := spi.Configure(machine.SPIConfig{
		Frequency: po.OLED.Hz,
		SCK:       machine.Pin(po.OLED.SCK),
		SDO:       machine.Pin(po.OLED.SDO),
		SDI:       machine.Pin(po.OLED.SDI),
	}); err != nil {
		return panel.Board{}, err
	}
	oled := sh1106.NewSPI(spi, machine.Pin(po.OLED.DC), machine.Pin(po.OLED.RST), machine.Pin(po.OLED.CS))
	oled.Configure(sh1106.Config{Width: po.Width, Height: po.Height})
	oled.ClearDisplay()

	pix := machine.Pin(po.Pixels)
	pix.Configure(machine.PinConfig{Mode: machine.PinOutput})
	strip := ws2812.New(pix)

	b := panel.Board{
		Button:       inputPin(po.Button),
		Keys:         keys,
		Encoder:      src,
		EncoderPhase: src.Phase(),
		Surface:      display.NewCanvas(&oled, display.DefaultFont, display.Black),
		Strip:        &strip,
		StatusLED:    outputPin(po.StatusLED, false),
	}

	if cfg.Console {
		u := uartx.UART1
		if err := u.Configure(uartx.UARTConfig{
			BaudRate: po.Console.Baud,
			TX:       machine.Pin(po.Console.TX),
			RX:       machine.Pin(po.Console.RX),
		}); err != nil {
			log.Warn("console uart unavailable", "error", err.Error())
		} else {
			b.Console = consoleWriter{u: u}
		}
	}
	log.Info("board ready", "board", cfg.Device, "phase", b.EncoderPhase)
	return b, nil
}
