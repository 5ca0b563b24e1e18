package main

import (
	"fmt"
	cmdcalculate "hours-stats/command/calculate"
	cmdimport "hours-stats/command/import"
	cmdweb "hours-stats/command/web"
	"log/slog"
	"os"
	"strings"
)

// Project hours analytics over the plan and detailed-hours spreadsheets.
// Usage:
//   hours-stats import [-plan plan.xlsx] [-hours horas.xlsx] [-causes causas.xlsx] [-out ./data]
//   hours-stats calculate -project P1 [-stage TAF] [-type Produtivas,Translado] [-start 2024-01] [-end 2024-06]
//   hours-stats web [-addr :8080] [-data ./data] [-ui ./ui/dist]
// Notes:
// - Sources may be local paths or http(s) URLs; SOURCES_TOKEN is sent as a bearer token.
// - import writes a CSV snapshot that calculate and web read back.

func main() {
	args := os.Args
	// Initialize slog logger (text to stderr, INFO unless LOG_LEVEL=debug)
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))

	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		switch sub {
		case "import":
			if err := cmdimport.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case "calculate":
			if err := cmdcalculate.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case "web":
			if err := cmdweb.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "usage: hours-stats import [-plan <xlsx|url>] [-hours <xlsx|url>] [-out ./data] | calculate -project <code> [filters] | web [-addr :8080] [-data ./data]\nENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml)")
	os.Exit(2)
}
