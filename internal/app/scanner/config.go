package scanner

import (
	"time"

	"github.com/ormanli/slipscan/internal/app/slip"
)

// Config defines configuration of application. Values are parsed from environment variables.
type Config struct {
	ServerPort                    int           `split_words:"true" default:"11111"`
	ServerHost                    string        `split_words:"true" default:"localhost"`
	ServerGracefulShutdownTimeout time.Duration `split_words:"true" default:"3s"`
	InitDebug                     bool          `split_words:"true"`
	DecoderPolicy                 slip.Policy   `split_words:"true" default:"zero-run"`
	MinCodeLength                 int           `split_words:"true" default:"30"`
}
