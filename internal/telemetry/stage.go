package telemetry

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// StageFinishedEvent is emitted once per completed stage, successful or not.
const StageFinishedEvent = "apimesh_stage_finished"

// NewRunID mints a correlation id grouping the stages of one tool invocation.
func NewRunID() string {
	return uuid.New().String()
}

// Stage runs fn and reports it as one stage event carrying run_id, the stage
// name, wall-clock duration_ms, a success flag and, on failure, the dynamic
// type name of the error, merged with extra. fn's error is returned to the
// caller unchanged and a panic in fn is re-panicked after the event is
// recorded: this helper observes failures, it never hides them.
func (t *Telemetry) Stage(runID, name string, extra map[string]any, fn func() error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			t.stageFinished(runID, name, time.Since(start), extra, typeName(r))
			panic(r)
		}
		var errType string
		if err != nil {
			errType = typeName(err)
		}
		t.stageFinished(runID, name, time.Since(start), extra, errType)
	}()
	return fn()
}

func (t *Telemetry) stageFinished(runID, name string, elapsed time.Duration, extra map[string]any, errType string) {
	props := map[string]any{
		"run_id":      runID,
		"stage":       name,
		"duration_ms": elapsed.Milliseconds(),
		"success":     errType == "",
	}
	if errType != "" {
		props["error_type"] = errType
	}
	for k, v := range extra {
		props[k] = v
	}
	t.Capture(StageFinishedEvent, props)
}

// typeName names a failure the way its Go type is written, e.g.
// "*errors.errorString" or "*fs.PathError".
func typeName(v any) string {
	return reflect.TypeOf(v).String()
}
