package signal

import (
	"errors"
	"fmt"
)

// TaskProfile parametriza la oscilación inducida por una tarea.
type TaskProfile struct {
	Amplitude float64 `json:"amplitude"`
	Frequency float64 `json:"frequency"`
}

// Nombres de tarea aceptados por el control.
const (
	RestingState  = "Resting State"
	VisualTask    = "Visual Task"
	LanguageTask  = "Language Task"
	MotorTask     = "Motor Task"
	CognitiveTest = "Cognitive Test"
)

var ErrUnknownTask = errors.New("signal: unknown task")

// UnknownTaskError: nombre fuera de la tabla fija. errors.Is(err, ErrUnknownTask) es true.
type UnknownTaskError struct {
	Task string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("signal: unknown task %q", e.Task)
}

func (e *UnknownTaskError) Is(target error) bool { return target == ErrUnknownTask }

var taskOrder = []string{RestingState, VisualTask, LanguageTask, MotorTask, CognitiveTest}

var profiles = map[string]TaskProfile{
	RestingState:  {Amplitude: 0.2, Frequency: 0.1},
	VisualTask:    {Amplitude: 1.0, Frequency: 0.25},
	LanguageTask:  {Amplitude: 0.8, Frequency: 0.2},
	MotorTask:     {Amplitude: 1.2, Frequency: 0.3},
	CognitiveTest: {Amplitude: 1.5, Frequency: 0.35},
}

// Tasks devuelve los nombres en el orden en que se muestran.
func Tasks() []string {
	out := make([]string, len(taskOrder))
	copy(out, taskOrder)
	return out
}

func Lookup(name string) (TaskProfile, error) {
	p, ok := profiles[name]
	if !ok {
		return TaskProfile{}, &UnknownTaskError{Task: name}
	}
	return p, nil
}
