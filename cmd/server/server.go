package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/api"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/signal"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/stream"
)

type publishFunc func(subject string, data []byte) error

type server struct {
	hub      *Hub
	publish  publishFunc // nil: streaming deshabilitado
	api      *api.Handler
	messages int64
}

func newServer(hub *Hub, publish publishFunc, opts ...api.Option) *server {
	s := &server{hub: hub, publish: publish}
	s.api = api.NewHandler(append([]api.Option{api.WithResultHook(s.onResult)}, opts...)...)
	return s
}

// onResult reenvía cada simulación a los clientes websocket y a NATS.
func (s *server) onResult(sim api.Simulation) {
	if b, err := json.Marshal(sim); err == nil {
		s.hub.broadcast(websocket.TextMessage, b)
	}
	if s.publish == nil {
		return
	}
	param := stream.NewParamMsg(stream.SubjectParams, sim.ID, sim.Task, sim.Index, true)
	param.Samples = len(sim.Time)
	b, err := param.Marshal()
	if err != nil {
		return
	}
	if err := s.publish(stream.SubjectParams, b); err != nil {
		log.Printf("server: publish params: %v", err)
	}
}

func (s *server) routes(web string) chi.Router {
	r := s.api.Routes()
	r.Post("/api/v1/streams", s.handleStream)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/ws", s.hub.serveWS)
	r.Handle("/*", http.FileServer(http.Dir(web)))
	return r
}

// Dispara una corrida en streaming en el producer
func (s *server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.publish == nil {
		http.Error(w, "Streaming disabled", http.StatusServiceUnavailable)
		return
	}
	var rm stream.RunMsg
	if err := json.NewDecoder(r.Body).Decode(&rm); err != nil {
		http.Error(w, "Invalid JSON", http.StatusUnprocessableEntity)
		return
	}
	if err := (signal.Request{Task: rm.Task, Duration: rm.Duration, Noise: rm.Noise}).Validate(); err != nil {
		api.WriteError(w, err)
		return
	}
	rm.ID = uuid.New().String()
	b, _ := json.Marshal(rm)
	if err := s.publish(stream.SubjectRun, b); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"id": rm.ID})
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "messages %d\n", atomic.LoadInt64(&s.messages))
	fmt.Fprintf(w, "simulations %d\n", s.api.Runs())
}

type msgSource interface {
	NextMsg(timeout time.Duration) (*nats.Msg, error)
}

// relayWaves reenvía las waves (binario passthrough) hasta que ctx termine
// o la suscripción deje de ser válida.
func (s *server) relayWaves(ctx context.Context, sub msgSource) {
	for ctx.Err() == nil {
		msg, err := sub.NextMsg(time.Second)
		if errors.Is(err, nats.ErrTimeout) {
			continue
		}
		if err != nil {
			log.Printf("server: wave relay stopped: %v", err)
			return
		}
		atomic.AddInt64(&s.messages, 1)
		s.hub.broadcast(websocket.BinaryMessage, msg.Data)
	}
}
