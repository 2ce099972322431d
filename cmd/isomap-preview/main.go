// Command isomap-preview serves a finished tile pyramid over HTTP, plus a
// websocket feed of render progress for a companion isomap run writing into
// the same directory. It never renders anything itself.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	addr := flag.String("listen", "0.0.0.0:8090", "address to listen on")
	tilesDir := flag.String("tiles", "./tiles", "tile pyramid directory to serve")
	progressFile := flag.String("progress", "", "optional progress file to poll and rebroadcast over the websocket feed")
	flag.Parse()

	if _, err := os.Stat(*tilesDir); err != nil {
		log.Fatalf("tile directory %q: %v", *tilesDir, err)
	}

	broadcaster := NewProgressBroadcaster()
	go broadcaster.Run()
	defer broadcaster.Stop()

	if *progressFile != "" {
		stop := make(chan struct{})
		go pollProgressFile(*progressFile, broadcaster, stop)
		defer close(stop)
	}

	router := mux.NewRouter()
	router.HandleFunc("/", indexHandler).Methods("GET")
	router.HandleFunc("/ws", wsProgressHandler(broadcaster))
	router.PathPrefix("/tiles/").Handler(http.StripPrefix("/tiles/", http.FileServer(http.Dir(*tilesDir)))).Methods("GET")

	logged := handlers.LoggingHandler(os.Stdout, router)
	recovered := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(logged)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      recovered,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		log.Println("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("isomap-preview serving %s on %s", *tilesDir, *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server: %v", err)
	}
}
