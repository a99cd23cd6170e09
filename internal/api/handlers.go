package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/analysis"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/render"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/signal"
)

// Valores iniciales del control.
const (
	DefaultTask     = signal.RestingState
	DefaultDuration = 15
	DefaultNoise    = 0.1
)

// Simulation es el cuerpo de respuesta de una corrida.
type Simulation struct {
	ID       string    `json:"id"`
	Task     string    `json:"task"`
	Duration int       `json:"duration"`
	Noise    float64   `json:"noise"`
	Time     []float64 `json:"time"`
	Oxy      []float64 `json:"oxy"`
	Deoxy    []float64 `json:"deoxy"`
	Index    float64   `json:"index"`
	Percent  float64   `json:"percent"`
	Level    string    `json:"level"`
	Message  string    `json:"message"`
	// PNG de esta misma corrida, sólo con ?chart=true; JSON lo codifica en base64.
	Chart []byte `json:"chart,omitempty"`
}

type taskInfo struct {
	Name string `json:"name"`
	signal.TaskProfile
}

// Handler sirve el control; cada corrida usa su propio simulador.
type Handler struct {
	newSim   func() *signal.NIRSSim
	onResult func(Simulation)
	runs     int64
}

type Option func(*Handler)

func WithSimFactory(f func() *signal.NIRSSim) Option {
	return func(h *Handler) { h.newSim = f }
}

// WithResultHook se llama tras cada simulación exitosa.
func WithResultHook(f func(Simulation)) Option {
	return func(h *Handler) { h.onResult = f }
}

func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		newSim: func() *signal.NIRSSim { return signal.NewNIRSSim(signal.NewSeed()) },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Runs() int64 { return atomic.LoadInt64(&h.runs) }

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/api/v1/tasks", h.HandleGetTasks)
	r.Post("/api/v1/simulations", h.HandleSimulate)
	r.Get("/api/v1/simulations/chart.png", h.HandleChart)
	return r
}

func (h *Handler) HandleGetTasks(w http.ResponseWriter, r *http.Request) {
	names := signal.Tasks()
	resp := make([]taskInfo, 0, len(names))
	for _, name := range names {
		p, _ := signal.Lookup(name)
		resp = append(resp, taskInfo{Name: name, TaskProfile: p})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]taskInfo{"tasks": resp})
}

func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req signal.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusUnprocessableEntity)
		return
	}

	res, err := h.newSim().Run(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	sim := newSimulation(req, res)
	atomic.AddInt64(&h.runs, 1)
	log.Printf("simulation %s: %s %ds noise=%.2f coi=%.2f%%", sim.ID, sim.Task, sim.Duration, sim.Noise, sim.Percent)
	if h.onResult != nil {
		h.onResult(sim)
	}

	if wantChart, _ := strconv.ParseBool(r.URL.Query().Get("chart")); wantChart {
		var buf bytes.Buffer
		if err := render.Chart(&buf, res); err != nil {
			log.Printf("chart: %v", err)
			http.Error(w, "Chart rendering failed", http.StatusInternalServerError)
			return
		}
		sim.Chart = buf.Bytes()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sim)
}

func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	res, err := h.newSim().Run(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Chart(&buf, res); err != nil {
		log.Printf("chart: %v", err)
		http.Error(w, "Chart rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func requestFromQuery(r *http.Request) (signal.Request, error) {
	q := r.URL.Query()
	req := signal.Request{Task: DefaultTask, Duration: DefaultDuration, Noise: DefaultNoise}
	if v := q.Get("task"); v != "" {
		req.Task = v
	}
	if v := q.Get("duration"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("invalid duration")
		}
		req.Duration = d
	}
	if v := q.Get("noise"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.New("invalid noise")
		}
		req.Noise = n
	}
	return req, nil
}

// StatusFor traduce los errores del generador a códigos HTTP.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, signal.ErrUnknownTask):
		return http.StatusBadRequest
	case errors.Is(err, signal.ErrInvalidDuration), errors.Is(err, signal.ErrInvalidNoise):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func WriteError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusFor(err))
}

func newSimulation(req signal.Request, res *signal.Result) Simulation {
	lvl := res.Level()
	return Simulation{
		ID:       uuid.New().String(),
		Task:     res.Task,
		Duration: req.Duration,
		Noise:    req.Noise,
		Time:     res.Time,
		Oxy:      res.Oxy,
		Deoxy:    res.Deoxy,
		Index:    res.Index,
		Percent:  analysis.Percent(res.Index),
		Level:    lvl.String(),
		Message:  lvl.Message(),
	}
}
