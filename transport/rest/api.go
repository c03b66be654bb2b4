package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type playRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) apiCreate(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, "apiCreate", err)
		return
	}

	writeJSON(w, http.StatusCreated, tictactoe.NewView(*game))
}

func (that *Server) apiGet(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "apiGet", err)
		return
	}

	writeJSON(w, http.StatusOK, tictactoe.NewView(*game))
}

func (that *Server) apiPlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": <0-8>}"})
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	that.writeGame(w, "apiPlay", game, err)
}

func (that *Server) apiJump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Move == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"move\": <index>}"})
		return
	}

	game, err := that.uGame.JumpTo(r.Context(), chi.URLParam(r, "id"), *req.Move)
	that.writeGame(w, "apiJump", game, err)
}

func (that *Server) writeGame(w http.ResponseWriter, method string, game *entity.Game, err error) {
	if err != nil {
		that.writeError(w, method, err)
		return
	}

	writeJSON(w, http.StatusOK, tictactoe.NewView(*game))
}

func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: repository.ErrGameNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidMove):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidMove.Error()})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
