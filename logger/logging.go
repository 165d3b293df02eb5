package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}).With().Timestamp().Logger()

// SetLevel adjusts the global level: "debug", "info", "error" or "disabled".
func SetLevel(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

func Debug(msg string, v ...interface{}) {
	log.Debug().Msg(fmt.Sprintf(msg, v...))
}

func Info(msg string, v ...interface{}) {
	log.Info().Msg(fmt.Sprintf(msg, v...))
}

func Error(msg string, v ...interface{}) {
	log.Error().Msg(fmt.Sprintf(msg, v...))
}

func Fatal(msg string, v ...interface{}) {
	log.Fatal().Msg(fmt.Sprintf(msg, v...))
}
