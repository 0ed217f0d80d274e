package main

import (
	"errors"
	"log"
	"net/http"

	"studioflow/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		log.Fatalf("failed to initialize server: %v", err)
	}

	log.Printf("studioflow api listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
