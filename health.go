package explorer

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status      string `json:"status"`
	DataVersion uint64 `json:"data_version"`
	Timezone    string `json:"timezone,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:      "ok",
		DataVersion: s.coord.Version(),
		Timezone:    s.builder.Timezone,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
