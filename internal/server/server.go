// Package server previews a generated report directory over HTTP.
package server

import (
	"log"
	"net/http"
)

type Server struct {
	Dir      string
	Username string
	Password string
}

func New(dir, user, pass string) *Server {
	return &Server{
		Dir:      dir,
		Username: user,
		Password: pass,
	}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	fileServer := http.FileServer(http.Dir(s.Dir))
	mux.Handle("/", s.basicAuth(fileServer))

	log.Printf("Serving %s on %s", s.Dir, addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
