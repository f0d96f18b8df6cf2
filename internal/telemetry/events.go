package telemetry

import "time"

// The package-level default, set by Init. Every helper below is a no-op when
// Init was never called.
var std *Telemetry

// Init constructs the default Telemetry from the environment.
func Init() {
	std = New(ConfigFromEnv())
}

// Default returns the default Telemetry, or nil before Init.
func Default() *Telemetry {
	return std
}

// Capture records an event on the default Telemetry.
func Capture(event string, properties map[string]any) {
	if std == nil {
		return
	}
	std.Capture(event, properties)
}

// Stage times fn on the default Telemetry. fn still runs, and its error is
// still returned, when telemetry was never initialized.
func Stage(runID, name string, extra map[string]any, fn func() error) error {
	if std == nil {
		return fn()
	}
	return std.Stage(runID, name, extra, fn)
}

// CLI

var cliRunID string
var cliCommandName string
var cliStartTime time.Time

// CLICommandStart marks the beginning of a CLI command invocation.
func CLICommandStart(commandName string) {
	cliRunID = NewRunID()
	cliCommandName = commandName
	cliStartTime = time.Now()
}

// CLICommandEnd reports the invocation as a finished stage. Does nothing if
// no command was marked started (help and completion plumbing).
func CLICommandEnd(cmdErr error) {
	if std == nil || cliCommandName == "" {
		return
	}
	var errType string
	if cmdErr != nil {
		errType = typeName(cmdErr)
	}
	std.stageFinished(cliRunID, cliCommandName, time.Since(cliStartTime), nil, errType)
}
