// panelsim runs the control panel in a terminal. The screen stands in for
// the OLED and the keyboard for the keys, button and encoder.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"panelcode-go/platform"
	"panelcode-go/services/config"
	"panelcode-go/services/panel"
	"panelcode-go/types"
	"panelcode-go/x/logx"
)

const help = "1-9 0 - = keys | space/enter select | left/right turn | q quit"

// stderr receives logs once the simulator has released its log file.
var stderr io.Writer = os.Stderr

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logx.New("panelsim").Error("panelsim failed", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "panelsim"
	app.Usage = "run the control panel in a terminal"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "device",
			Usage: "embedded board configuration to load",
			Value: "sim",
		},
		cli.IntFlag{
			Name:  "poll-ms",
			Usage: "override the input poll period (0 keeps the board value)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
			Value: "info",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "where logs and the event console go",
			Value: "panelsim.log",
		},
	}
	app.Action = run
	return app
}

func run(c *cli.Context) error {
	f, err := os.OpenFile(c.String("log-file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	logx.SetOutput(f, true)
	defer logx.SetOutput(stderr, false)
	if err := logx.SetLevel(c.String("log-level")); err != nil {
		return err
	}

	cfg, err := config.Load(c.String("device"))
	if err != nil {
		return err
	}
	if ms := c.Int("poll-ms"); ms > 0 {
		cfg.PollMs = uint32(ms)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	return simulate(context.Background(), screen, cfg, f)
}

// simulate runs the panel on screen until the user quits or the panel fails.
func simulate(ctx context.Context, screen tcell.Screen, cfg types.PanelConfig, console io.Writer) error {
	log := logx.New("panelsim")
	po := platform.MacroPad
	term := NewTerminal(screen, po.Width, po.Height)

	h, err := platform.NewHost(po, term, console)
	if err != nil {
		return err
	}
	defer h.Source.Close()

	p, err := panel.New(cfg, h.Board, func(_ context.Context, i int, label string) error {
		log.Info("selected", "index", i, "label", label)
		term.DrawStatus("selected: " + label)
		return nil
	})
	if err != nil {
		return err
	}

	kb := NewKeyboard(h, holdFor(cfg))
	defer kb.ReleaseAll()
	term.DrawStatus(help)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(ctx) })
	g.Go(func() error {
		tick := time.NewTicker(50 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
				term.DrawLEDs(h.LEDs.Last())
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		// wake PollEvent so the input loop can see the cancellation
		return screen.PostEvent(tcell.NewEventInterrupt(nil))
	})

loop:
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			cancel()
		case *tcell.EventKey:
			if kb.Handle(ev) {
				cancel()
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
		}
		if ctx.Err() != nil {
			break loop
		}
	}
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("panelsim stopped")
	return nil
}

// holdFor keeps a tapped key down for a few poll periods so the sampler
// sees both edges.
func holdFor(cfg types.PanelConfig) time.Duration {
	d := 3 * cfg.PollPeriod()
	if d < 150*time.Millisecond {
		d = 150 * time.Millisecond
	}
	return d
}
