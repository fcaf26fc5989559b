package catalog

import "github.com/boardflow/boardflow/pkg/boardflow"

// LogMessage writes a message to the run logger. Logging is
// informational and needs no capability.
type LogMessage struct{}

// Define returns the log_message node definition.
func (LogMessage) Define() boardflow.Definition {
	return boardflow.Definition{
		Name:         "log_message",
		FriendlyName: "Log Message",
		Description:  "Writes a message to the run log",
		Category:     "utility",
		Pins: []boardflow.Pin{
			boardflow.ExecPin("exec_in", boardflow.Input),
			boardflow.InputPin("message", boardflow.TypeString).
				WithDefault("").
				WithLabel("Message", "Text to log"),
			boardflow.InputPin("level", boardflow.TypeString).
				WithDefault("info").
				WithLabel("Level", "Log level: debug, info, warn or error"),
			boardflow.ExecPin("exec_out", boardflow.Output),
		},
	}
}

// Run logs the message at the requested level. Unknown levels fall back
// to info.
func (LogMessage) Run(ctx *boardflow.ExecutionContext) {
	message, err := ctx.InputString("message")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}
	level, err := ctx.InputString("level")
	if err != nil {
		ctx.Fail(err.Error())
		return
	}

	logger := ctx.Logger()
	switch level {
	case "debug":
		logger.Debug(message)
	case "warn":
		logger.Warn(message)
	case "error":
		logger.Error(message)
	default:
		logger.Info(message)
	}
	ctx.Success()
}
