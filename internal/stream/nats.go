package stream

import (
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects por defecto.
const (
	SubjectRun    = "nirs.run"
	SubjectWave   = "nirs.wave"
	SubjectParams = "nirs.params"
)

func Connect(url, name string) (*nats.Conn, error) {
	if name == "" {
		name = "go-nirs-stream"
	}
	return nats.Connect(
		url,
		nats.Name(name),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
}
