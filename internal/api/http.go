package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/imishinist/espikey/api/kvpb"
	"github.com/imishinist/espikey/internal/service"
)

// Server exposes the debug HTTP surface: health, metrics, and base64
// get/set endpoints for manual inspection. Keys and values cross this
// boundary base64-encoded because they are arbitrary binary; the core
// contract stays raw bytes.
type Server struct {
	svc *service.KV
}

// NewServer creates a new debug HTTP server over the given service.
func NewServer(svc *service.KV) *Server {
	return &Server{
		svc: svc,
	}
}

// RegisterRoutes registers all HTTP handlers on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/debug/get", s.handleGet)
	mux.HandleFunc("/debug/set", s.handleSet)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleGet handles GET /debug/get?key=<base64> requests.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key, err := base64.StdEncoding.DecodeString(r.URL.Query().Get("key"))
	if err != nil {
		http.Error(w, "Invalid base64 key", http.StatusBadRequest)
		return
	}

	st, value := s.svc.Get(key)

	resp := map[string]interface{}{
		"status": st.String(),
	}
	w.Header().Set("Content-Type", "application/json")
	if st == kvpb.Status_STATUS_OK {
		resp["value"] = base64.StdEncoding.EncodeToString(value)
	} else if st == kvpb.Status_STATUS_NOT_FOUND {
		w.WriteHeader(http.StatusNotFound)
	}
	json.NewEncoder(w).Encode(resp)
}

// handleSet handles POST /debug/set requests with JSON body.
// Expects: {"key": "<base64>", "value": "<base64>"}
func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	key, err := base64.StdEncoding.DecodeString(req.Key)
	if err != nil {
		http.Error(w, "Invalid base64 key", http.StatusBadRequest)
		return
	}
	value, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		http.Error(w, "Invalid base64 value", http.StatusBadRequest)
		return
	}

	st := s.svc.Set(key, value)
	if st != kvpb.Status_STATUS_OK {
		http.Error(w, st.String(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": st.String()})
}
