package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/ketrez/steward/internal/utils"
	"github.com/ketrez/steward/pkg/api"
	"github.com/ketrez/steward/pkg/api/http/common"
	"github.com/ketrez/steward/pkg/structs"
	"github.com/ketrez/steward/pkg/task"
)

const (
	wait = 30 * time.Second

	// await requests hold their connection open; everything else is quick
	defaultAwaitTimeout = 30 * time.Second
	maxAwaitTimeout     = 5 * time.Minute
)

type Server struct {
	addr       string
	debug      bool
	reg        *task.Registry
	svc        api.TaskManager
	exit       chan os.Signal
	httpserver *http.Server
}

func NewServer(addr string, reg *task.Registry, debug bool) *Server {
	return &Server{
		addr:  addr,
		debug: debug,
		reg:   reg,
		exit:  make(chan os.Signal, 1),
	}
}

func (s *Server) ServeForever(svc api.TaskManager) error {
	s.svc = svc

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.Health).Methods(http.MethodGet)
	router.HandleFunc(common.API_TASKS, s.Tasks).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc(common.API_TASK, s.GetTask).Methods(http.MethodGet)
	router.HandleFunc(common.API_AWAIT, s.AwaitTask).Methods(http.MethodGet)
	router.HandleFunc(common.API_CANCEL, s.CancelTask).Methods(http.MethodPatch)

	if s.debug {
		log.Println("Debug enabled, adding per-request logging middleware")
		router.Use(requestLogger)
	}

	s.httpserver = &http.Server{
		Handler:      router,
		Addr:         s.addr,
		WriteTimeout: maxAwaitTimeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		log.Println("Listening on", s.httpserver.Addr)
		if err := s.httpserver.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	signal.Notify(s.exit, os.Interrupt)
	defer s.Close()
	<-s.exit

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	s.httpserver.Shutdown(ctx)
	os.Exit(0)
	return nil
}

func (s *Server) Tasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTasks(w, r)
	case http.MethodPost:
		s.submitTask(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) submitTask(w http.ResponseWriter, r *http.Request) {
	req := &common.SubmitRequest{}
	err := unmarshalJson(w, r, req)
	if err != nil {
		return
	}

	t, err := s.reg.Decode(req.Type, req.Args)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	id, err := s.svc.Submit(r.Context(), t)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	err = json.NewEncoder(w).Encode(&common.SubmitResponse{TaskID: id})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := &structs.Query{}
	err := unmarshalQuery(w, r, q)
	if err != nil {
		return
	}

	items, err := s.svc.List(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	if s.debug {
		log.Println(r.URL, "returned", len(items), "items")
	}

	err = json.NewEncoder(w).Encode(items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !utils.IsValidID(id) {
		http.Error(w, "bad task id", http.StatusBadRequest)
		return
	}

	d, err := s.svc.Details(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	err = json.NewEncoder(w).Encode(d)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) AwaitTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !utils.IsValidID(id) {
		http.Error(w, "bad task id", http.StatusBadRequest)
		return
	}

	timeout := defaultAwaitTimeout
	if raw := r.URL.Query().Get("timeout"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		timeout = parsed
	}
	if timeout > maxAwaitTimeout {
		timeout = maxAwaitTimeout
	}

	d, err := s.svc.Await(r.Context(), id, timeout)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	err = json.NewEncoder(w).Encode(d)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) CancelTask(w http.ResponseWriter, r *http.Request) {
	req := &common.CancelRequest{}
	err := unmarshalJson(w, r, req)
	if err != nil {
		return
	}

	if err := s.svc.Cancel(r.Context(), req.TaskID); err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	// cancellation is async; hand back the current details
	d, err := s.svc.Details(r.Context(), req.TaskID)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	err = json.NewEncoder(w).Encode(d)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) Close() error {
	s.exit <- os.Interrupt
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
