package main

import (
	"log"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/analysis"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/stream"
)

type frameHandler struct {
	tracker *analysis.IndexTracker
	subject string
	publish func(data []byte) error
}

// handle procesa un frame de nirs.wave y devuelve cuántos ParamMsg publicó.
func (h *frameHandler) handle(data []byte) (int, error) {
	samples, err := stream.DecodeSamples(data)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, s := range samples {

		// t == 0 marca el inicio de una corrida nueva
		if s.T == 0 {
			h.tracker.Reset()
		}

		coi, lvl, ok := h.tracker.Process(float64(s.Oxy), float64(s.Deoxy))
		if !ok {
			continue
		}

		param := stream.NewParamMsg(h.subject, "", "", coi, false)
		param.Samples = h.tracker.Count()

		b, err := param.Marshal()
		if err != nil {
			return sent, err
		}
		if err := h.publish(b); err != nil {
			return sent, err
		}
		sent++

		log.Printf("index %.2f%% (%s) after %d samples", param.Percent, lvl, h.tracker.Count())
	}
	return sent, nil
}
