// Package logger configura zerolog para el servicio: consola legible en desarrollo,
// JSON en el resto de entornos y un sublogger por componente (ledger, http, scheduler...).
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string    // development/local -> consola; cualquier otro -> JSON
	Level   string    // trace, debug, info, warn, error; vacío o desconocido -> info
	Service string    // se agrega como campo "service" en cada línea
	Output  io.Writer // por defecto os.Stdout
}

// Logger es el zerolog.Logger raíz del proceso.
type Logger struct {
	zerolog.Logger
}

// New crea el logger raíz y lo instala como logger global de zerolog.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if isLocal(cfg.Env) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	l := &Logger{Logger: ctx.Logger()}
	log.Logger = l.Logger
	return l
}

// Nop devuelve un logger que descarta todo (tests).
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// ParseLevel traduce LOG_LEVEL. Un valor vacío o inválido queda en info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component crea un sublogger con el campo "component" fijo.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func isLocal(env string) bool {
	switch strings.ToLower(env) {
	case "development", "dev", "local":
		return true
	}
	return false
}
