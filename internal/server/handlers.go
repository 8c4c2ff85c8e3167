package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rdzcn/lights-raspberry/internal/matrix"
	"github.com/rdzcn/lights-raspberry/internal/state"
)

type gridRequest struct {
	Grid *[][]matrix.Color `json:"grid"`
}

type pixelRequest struct {
	X     *int          `json:"x"`
	Y     *int          `json:"y"`
	Color *matrix.Color `json:"color"`
}

type brightnessRequest struct {
	Brightness *float64 `json:"brightness"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"unicorn_available": s.available,
		"grid_size": map[string]int{
			"width":  matrix.Width,
			"height": matrix.Height,
		},
	})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req gridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Grid == nil {
		respondError(w, http.StatusBadRequest, `request must include "grid" field`)
		return
	}
	g, err := matrix.ParseGrid(*req.Grid)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.ctrl.SetGrid(g); err != nil {
		log.Error().Err(err).Msg("Failed to update grid")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	log.Info().Msg("Grid updated")
	respondOK(w)
}

func (s *Server) handlePixel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req pixelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.X == nil || req.Y == nil {
		respondError(w, http.StatusBadRequest, "x and y coordinates required")
		return
	}
	if err := matrix.CheckCoords(*req.X, *req.Y); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Color == nil {
		respondError(w, http.StatusBadRequest, "color object required")
		return
	}
	if err := req.Color.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.ctrl.SetPixel(*req.X, *req.Y, *req.Color); err != nil {
		log.Error().Err(err).Msg("Failed to update pixel")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	log.Info().Int("x", *req.X).Int("y", *req.Y).Int("r", req.Color.R).Int("g", req.Color.G).Int("b", req.Color.B).Msg("Pixel updated")
	respondOK(w)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.ctrl.Clear(); err != nil {
		log.Error().Err(err).Msg("Failed to clear grid")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	log.Info().Msg("Grid cleared")
	respondOK(w)
}

func (s *Server) handleBrightness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req brightnessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Brightness == nil {
		respondError(w, http.StatusBadRequest, "brightness value required")
		return
	}
	if *req.Brightness < 0 || *req.Brightness > 1 {
		respondError(w, http.StatusBadRequest, "brightness must be a number between 0 and 1")
		return
	}
	if err := s.ctrl.SetBrightness(*req.Brightness); err != nil {
		log.Error().Err(err).Msg("Failed to set brightness")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	log.Info().Float64("brightness", *req.Brightness).Msg("Brightness set")
	respondOK(w)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entries := s.ctrl.History()
	if entries == nil {
		entries = []state.HistoryEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"grids": entries})
}

func respondJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondOK(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}
