package config

import (
	"bytes"
	"encoding/json"

	"panelcode-go/errcode"
	"panelcode-go/types"
)

// -----------------------------------------------------------------------------
// Defaults
// -----------------------------------------------------------------------------

const (
	defaultPollMs         = 100
	defaultBusCapacity    = 16
	defaultMaxSubscribers = 4
	defaultFadeMs         = 600
	defaultBrightness     = 0x40
	defaultBlinkMs        = 50

	maxBusCapacity = 256
	maxSubscribers = 8
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Devices lists the embedded board names.
func Devices() []string {
	out := make([]string, 0, len(embeddedConfigs))
	for k := range embeddedConfigs {
		out = append(out, k)
	}
	return out
}

// Default returns a complete configuration with every default applied.
func Default() types.PanelConfig {
	var c types.PanelConfig
	applyDefaults(&c)
	return c
}

// Load decodes the embedded configuration for device, fills defaults and
// validates the result.
func Load(device string) (types.PanelConfig, error) {
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return types.PanelConfig{}, &errcode.E{C: errcode.UnknownBoard, Op: "config.load", Msg: device}
	}
	cfg, err := Parse(raw)
	if err != nil {
		return types.PanelConfig{}, err
	}
	cfg.Device = device
	return cfg, nil
}

// Parse decodes one JSON document. Unknown fields are rejected.
func Parse(raw []byte) (types.PanelConfig, error) {
	var cfg types.PanelConfig
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return types.PanelConfig{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.parse", Err: err}
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return types.PanelConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(c *types.PanelConfig) {
	if c.PollMs == 0 {
		c.PollMs = defaultPollMs
	}
	if c.BusCapacity == 0 {
		c.BusCapacity = defaultBusCapacity
	}
	if c.MaxSubscribers == 0 {
		c.MaxSubscribers = defaultMaxSubscribers
	}
	if c.LED.FadeMs == 0 {
		c.LED.FadeMs = defaultFadeMs
	}
	if c.LED.Brightness == 0 {
		c.LED.Brightness = defaultBrightness
	}
	if c.BlinkMs == 0 {
		c.BlinkMs = defaultBlinkMs
	}
	if len(c.Menu) == 0 {
		c.Menu = []string{"Start"}
	}
}

// Validate checks ranges that the tasks rely on.
func Validate(c types.PanelConfig) error {
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: msg}
	}
	switch {
	case c.BusCapacity < 1 || c.BusCapacity > maxBusCapacity:
		return bad("bus_capacity out of range")
	case c.MaxSubscribers < 1 || c.MaxSubscribers > maxSubscribers:
		return bad("max_subscribers out of range")
	case c.PollMs > 1000:
		return bad("poll_ms above 1000")
	}
	for _, item := range c.Menu {
		if item == "" {
			return bad("empty menu label")
		}
	}
	return nil
}
