package stream

import (
	"encoding/json"
	"time"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/analysis"
)

// RunMsg dispara una simulación en el producer.
type RunMsg struct {
	ID       string  `json:"id,omitempty"`
	Task     string  `json:"task"`
	Duration int     `json:"duration"`
	Noise    float64 `json:"noise"`
}

// ParamMsg lleva el índice de una corrida: parcial (processor) o final (producer, server).
type ParamMsg struct {
	Subject string  `json:"subject"`
	ID      string  `json:"id,omitempty"`
	Ts      int64   `json:"ts"`
	Task    string  `json:"task,omitempty"`
	Samples int     `json:"samples,omitempty"`
	Index   float64 `json:"index"`
	Percent float64 `json:"percent"`
	Level   string  `json:"level"`
	Message string  `json:"message"`
	Final   bool    `json:"final"`
}

func NewParamMsg(subject, id, task string, coi float64, final bool) ParamMsg {
	lvl := analysis.Classify(coi)
	return ParamMsg{
		Subject: subject,
		ID:      id,
		Ts:      time.Now().UnixMilli(),
		Task:    task,
		Index:   coi,
		Percent: analysis.Percent(coi),
		Level:   lvl.String(),
		Message: lvl.Message(),
		Final:   final,
	}
}

func (m ParamMsg) Marshal() ([]byte, error) { return json.Marshal(m) }
