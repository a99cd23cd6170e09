package main

import (
	"flag"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/analysis"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/signal"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/stream"
)

func main() {

	var (
		natsURL = flag.String("nats", "nats://127.0.0.1:4222", "NATS url")
		in      = flag.String("in", stream.SubjectWave, "input subject")
		out     = flag.String("out", stream.SubjectParams, "output subject")
		window  = flag.Int("window", signal.SampleRate, "samples between index updates")
	)
	flag.Parse()

	nc, err := stream.Connect(*natsURL, "nirs-processor")
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Drain()

	h := &frameHandler{
		tracker: analysis.NewIndexTracker(*window),
		subject: *out,
		publish: func(b []byte) error { return nc.Publish(*out, b) },
	}

	_, err = nc.Subscribe(*in, func(msg *nats.Msg) {
		if _, err := h.handle(msg.Data); err != nil {
			log.Printf("processor: %v", err)
		}
	})

	if err != nil {
		log.Fatal(err)
	}

	log.Println("processor running...")
	select {}
}
