package server

import (
	"log"
	"net/http"
	"time"
)

// requestLogger returns middleware that logs every request with its handling
// time. Only installed when the server runs in debug mode.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		next.ServeHTTP(w, r)
		log.Println(r.Method, r.RequestURI, r.ContentLength, time.Since(began))
	})
}
