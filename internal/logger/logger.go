package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"whilelang/pkg/color"
)

// Init initializes the logger
func Init(debug, noColor bool) {
	InitWriter(os.Stderr, debug, noColor)
}

// InitWriter initializes the logger writing to w
func InitWriter(w io.Writer, debug, noColor bool) {
	log.SetDefault(log.NewWithOptions(w,
		log.Options{
			ReportCaller:    debug,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "WHILE",
		}))

	log.SetLevel(log.WarnLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	if noColor {
		color.EnableColor(false)
	}
	log.SetColorProfile(color.Profile())
}
