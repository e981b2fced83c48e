package main

import (
	"context"
	"runtime"
	"time"

	"panelcode-go/platform"
	"panelcode-go/services/config"
	"panelcode-go/services/panel"
	"panelcode-go/x/logx"
)

const device = "macropad"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot", device)

	log := logx.New("main")
	cfg, err := config.Load(device)
	if err != nil {
		halt("config", err)
	}

	board, err := platform.NewBoard(cfg)
	if err != nil {
		halt("board", err)
	}
	printMem()

	// A commit only logs; the menu is shown again afterwards.
	err = panel.Run(context.Background(), cfg, board, func(_ context.Context, i int, label string) error {
		log.Info("selected", "index", i, "label", label)
		printMem()
		return nil
	})
	halt("panel", err)
}

func halt(stage string, err error) {
	if err != nil {
		println("[main]", stage, "failed:", err.Error())
	} else {
		println("[main]", stage, "stopped")
	}
	for {
		time.Sleep(time.Hour)
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
