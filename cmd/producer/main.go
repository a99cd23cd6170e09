package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	osSignal "os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/signal"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/stream"
)

func main() {

	var (
		natsURL  = flag.String("nats", "nats://127.0.0.1:4222", "NATS url")
		runSubj  = flag.String("run", stream.SubjectRun, "trigger subject")
		subject  = flag.String("subject", stream.SubjectWave, "wave subject")
		params   = flag.String("params", stream.SubjectParams, "params subject")
		batch    = flag.Int("batch", 10, "samples per message")
		once     = flag.Bool("once", false, "run a single simulation from flags and exit")
		task     = flag.String("task", signal.VisualTask, "task name")
		duration = flag.Int("duration", 15, "duration in seconds (5-30)")
		noise    = flag.Float64("noise", 0.1, "noise level (0-0.5)")
	)
	flag.Parse()

	nc, err := stream.Connect(*natsURL, "nirs-producer")
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Drain()

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	osSignal.Notify(ch, os.Interrupt)

	go func() {
		<-ch
		cancel()
	}()

	p := &producer{
		publish: nc.Publish,
		subject: *subject,
		params:  *params,
		batch:   *batch,
		sim:     signal.NewNIRSSim(signal.NewSeed()),
	}

	if *once {
		if err := p.run(ctx, stream.RunMsg{Task: *task, Duration: *duration, Noise: *noise}); err != nil {
			log.Fatal(err)
		}
		return
	}

	runs := make(chan stream.RunMsg, 8)
	_, err = nc.Subscribe(*runSubj, func(msg *nats.Msg) {
		var rm stream.RunMsg
		if err := json.Unmarshal(msg.Data, &rm); err != nil {
			log.Printf("producer: bad run message: %v", err)
			return
		}
		select {
		case runs <- rm:
		default:
			log.Printf("producer: busy, dropping run %q", rm.Task)
		}
	})
	if err != nil {
		log.Fatal(err)
	}

	log.Println("producer waiting on", *runSubj)
	for {
		select {
		case <-ctx.Done():
			log.Println("producer: stopping")
			return
		case rm := <-runs:
			if err := p.run(ctx, rm); err != nil {
				log.Printf("producer: %v", err)
			}
		}
	}
}

type producer struct {
	publish func(subject string, data []byte) error
	subject string
	params  string
	batch   int
	sim     *signal.NIRSSim
	// tick marca el ritmo de muestreo; nil usa un ticker a SampleRate
	tick func() (<-chan time.Time, func())
}

func sampleTicker() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second / signal.SampleRate)
	return t.C, t.Stop
}

// run genera la simulación completa, la reproduce a 20 Hz y publica el índice final.
func (p *producer) run(ctx context.Context, rm stream.RunMsg) error {
	res, err := p.sim.Run(signal.Request{Task: rm.Task, Duration: rm.Duration, Noise: rm.Noise})
	if err != nil {
		return err
	}
	if rm.ID == "" {
		rm.ID = uuid.New().String()
	}
	log.Printf("producer: streaming %s (%s, %d samples)", rm.ID, res.Task, res.Len())

	tick := p.tick
	if tick == nil {
		tick = sampleTicker
	}
	c, stop := tick()
	defer stop()

	publishWave := func(b []byte) error { return p.publish(p.subject, b) }
	if _, err := streamResult(ctx, res, p.batch, c, publishWave); err != nil {
		return err
	}

	b, err := finalParams(p.params, rm.ID, res)
	if err != nil {
		return err
	}
	return p.publish(p.params, b)
}

// streamResult emite una muestra por tick y publica lotes de batch muestras;
// el último lote puede ser más corto. Devuelve la cantidad de frames publicados.
func streamResult(ctx context.Context, res *signal.Result, batch int, tick <-chan time.Time, publish func([]byte) error) (int, error) {
	if batch < 1 {
		batch = 1
	}
	frames := 0
	buffer := make([]stream.Sample, 0, batch)
	for i := 0; i < res.Len(); i++ {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		case <-tick:
		}

		buffer = append(buffer, stream.Sample{
			T:     float32(res.Time[i]),
			Oxy:   float32(res.Oxy[i]),
			Deoxy: float32(res.Deoxy[i]),
		})
		if len(buffer) >= batch || i == res.Len()-1 {
			if err := publish(stream.EncodeSamples(buffer)); err != nil {
				return frames, err
			}
			frames++
			buffer = buffer[:0]
		}
	}
	return frames, nil
}

func finalParams(subject, id string, res *signal.Result) ([]byte, error) {
	msg := stream.NewParamMsg(subject, id, res.Task, res.Index, true)
	msg.Samples = res.Len()
	return msg.Marshal()
}
