package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (board name selected at build or on the simulator command line)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgMacropad = `{
  "poll_ms": 100,
  "bus_capacity": 16,
  "max_subscribers": 4,
  "menu": ["Snake", "Breakout", "Chip-8: Pong", "Chip-8: Tetris", "Set clock", "LED colours", "About"],
  "led": {
    "fade_ms": 600,
    "brightness": 64
  },
  "blink_ms": 40,
  "console": true
}`

const cfgSim = `{
  "poll_ms": 50,
  "bus_capacity": 32,
  "max_subscribers": 4,
  "menu": ["Snake", "Breakout", "Chip-8: Pong", "Chip-8: Tetris", "Chip-8: Space Invaders", "Set clock", "LED colours", "Diagnostics", "About"],
  "led": {
    "fade_ms": 400,
    "brightness": 255
  },
  "blink_ms": 60,
  "console": true
}`

var embeddedConfigs = map[string][]byte{
	"macropad": []byte(cfgMacropad),
	"sim":      []byte(cfgSim),
}
