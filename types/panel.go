package types

import "time"

// ---- Panel configuration ----

type LEDConfig struct {
	FadeMs     uint32 `json:"fade_ms"`
	Brightness uint8  `json:"brightness"`
}

// PanelConfig is the decoded board configuration shared by every task.
type PanelConfig struct {
	Device         string    `json:"-"`
	PollMs         uint32    `json:"poll_ms"`
	BusCapacity    int       `json:"bus_capacity"`
	MaxSubscribers int       `json:"max_subscribers"`
	Menu           []string  `json:"menu"`
	LED            LEDConfig `json:"led"`
	BlinkMs        uint32    `json:"blink_ms"`
	Console        bool      `json:"console"`
}

func (c PanelConfig) PollPeriod() time.Duration {
	return time.Duration(c.PollMs) * time.Millisecond
}

func (c PanelConfig) BlinkDuration() time.Duration {
	return time.Duration(c.BlinkMs) * time.Millisecond
}
