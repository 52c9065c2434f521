package portal

import "github.com/rs/zerolog"

// Notifier shows short user-facing messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to a zerolog logger.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(message string) {
	n.log.Info().Str("kind", "toast").Msg(message)
}

func (n *LogNotifier) Error(message string) {
	n.log.Error().Str("kind", "toast").Msg(message)
}
