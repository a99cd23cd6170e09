package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	osSignal "os/signal"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/stream"
)

func main() {

	var (
		natsURL = flag.String("nats", "nats://127.0.0.1:4222", "NATS url (empty disables streaming)")
		addr    = flag.String("addr", ":8080", "http address")
		web     = flag.String("web", "./web", "static files directory")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := newHub()
	srv := newServer(hub, nil)

	if *natsURL != "" {
		nc, err := stream.Connect(*natsURL, "nirs-server")
		if err != nil {
			log.Fatal(err)
		}
		defer nc.Drain()
		srv.publish = nc.Publish

		sub, err := nc.SubscribeSync(stream.SubjectWave)
		if err != nil {
			log.Fatal(err)
		}
		_, err = nc.Subscribe(stream.SubjectParams, func(msg *nats.Msg) {
			hub.broadcast(websocket.TextMessage, msg.Data)
		})
		if err != nil {
			log.Fatal(err)
		}
		go srv.relayWaves(ctx, sub)
	}

	server := &http.Server{Addr: *addr, Handler: srv.routes(*web)}

	go func() {
		log.Println("server running on", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	osSignal.Notify(ch, os.Interrupt)
	<-ch
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()

	server.Shutdown(shutdownCtx)
	log.Println("server stopped")
}
