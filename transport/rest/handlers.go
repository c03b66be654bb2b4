package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const gameCookieName = "game_id"

// index - renders the game of the browser session, starting one if needed.
func (that *Server) index(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "index")

	game, err := that.uGame.GetOrCreateGame(r.Context(), gameIDFromCookie(r))
	if err != nil {
		log.Error("failed to get or create game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setGameCookie(w, game.ID)

	body, err := renderTemplate(that.page, newPageData(tictactoe.NewView(*game)))
	if err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// play - handles a click on a board square.
func (that *Server) play(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(r.FormValue("cell"))
	if err != nil {
		http.Error(w, "invalid cell", http.StatusBadRequest)
		return
	}

	that.applyAndRedirect(w, r, "play", func(id string) error {
		_, err := that.uGame.MakeTurn(r.Context(), id, cell)
		return err
	})
}

// jump - handles a click on a history entry.
func (that *Server) jump(w http.ResponseWriter, r *http.Request) {
	move, err := strconv.Atoi(r.FormValue("move"))
	if err != nil {
		http.Error(w, "invalid move", http.StatusBadRequest)
		return
	}

	that.applyAndRedirect(w, r, "jump", func(id string) error {
		_, err := that.uGame.JumpTo(r.Context(), id, move)
		return err
	})
}

func (that *Server) restart(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.RestartGame(r.Context(), gameIDFromCookie(r))
	if err != nil {
		that.logger.Error("failed to restart game", "method", "restart", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setGameCookie(w, game.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Server) applyAndRedirect(w http.ResponseWriter, r *http.Request, method string, apply func(id string) error) {
	id := gameIDFromCookie(r)
	if id == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	err := apply(id)
	switch {
	case err == nil, errors.Is(err, repository.ErrGameNotFound):
		// an expired session starts over on the next page load
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, apperror.ErrInvalidMove):
		http.Error(w, "invalid move", http.StatusBadRequest)
	default:
		that.logger.Error("failed to apply action", "method", method, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func gameIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(gameCookieName)
	if err != nil || !pkg.IsValidID(cookie.Value) {
		return ""
	}

	return cookie.Value
}

func setGameCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     gameCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
