package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

func newTestServer(t *testing.T) (*usecase.GameManager, http.Handler) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(time.Hour))

	return manager, New(logger, manager).Handler()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(path string, form url.Values, gameID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if gameID != "" {
		req.AddCookie(&http.Cookie{Name: gameCookieName, Value: gameID})
	}
	return req
}

func gameCookie(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	for _, c := range rr.Result().Cookies() {
		if c.Name == gameCookieName {
			return c.Value
		}
	}

	t.Fatalf("expected %s cookie to be set", gameCookieName)
	return ""
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) tictactoe.View {
	t.Helper()

	var view tictactoe.View
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	return view
}

func TestPing(t *testing.T) {
	_, h := newTestServer(t)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestIndexPage(t *testing.T) {
	t.Run("Starts a game and sets the cookie", func(t *testing.T) {
		manager, h := newTestServer(t)

		// When: a new browser opens the page
		rr := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

		// Then: a game is created, remembered in a cookie and rendered
		require.Equal(t, http.StatusOK, rr.Code)
		id := gameCookie(t, rr)
		_, err := manager.GetGame(context.Background(), id)
		require.NoError(t, err)

		body := rr.Body.String()
		assert.Contains(t, body, "Next player: X")
		assert.Contains(t, body, "Go to game start")
		assert.Contains(t, body, `action="/play"`)
		assert.Equal(t, 9, strings.Count(body, `class="square"`))
	})

	t.Run("Keeps the existing game", func(t *testing.T) {
		manager, h := newTestServer(t)
		game, err := manager.CreateGame(context.Background())
		require.NoError(t, err)
		_, err = manager.MakeTurn(context.Background(), game.ID, 4)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: gameCookieName, Value: game.ID})
		rr := serve(h, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, game.ID, gameCookie(t, rr))
		assert.Contains(t, rr.Body.String(), "Next player: O")
		assert.Contains(t, rr.Body.String(), "Go to move #1")
	})

	t.Run("Replaces an unknown cookie", func(t *testing.T) {
		_, h := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: gameCookieName, Value: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"})
		rr := serve(h, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotEqual(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", gameCookie(t, rr))
	})
}

func TestPlayAndJumpForms(t *testing.T) {
	ctx := context.Background()

	t.Run("Play records the move", func(t *testing.T) {
		manager, h := newTestServer(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		rr := serve(h, postForm("/play", url.Values{"cell": {"4"}}, game.ID))

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))

		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, stored.CurrentSquares()[4])
	})

	t.Run("Illegal move changes nothing", func(t *testing.T) {
		manager, h := newTestServer(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)
		serve(h, postForm("/play", url.Values{"cell": {"4"}}, game.ID))

		rr := serve(h, postForm("/play", url.Values{"cell": {"4"}}, game.ID))

		require.Equal(t, http.StatusSeeOther, rr.Code)
		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Len(t, stored.History, 2)
	})

	t.Run("Jump then play branches the history", func(t *testing.T) {
		manager, h := newTestServer(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)
		serve(h, postForm("/play", url.Values{"cell": {"0"}}, game.ID))
		serve(h, postForm("/play", url.Values{"cell": {"4"}}, game.ID))

		rr := serve(h, postForm("/jump", url.Values{"move": {"0"}}, game.ID))
		require.Equal(t, http.StatusSeeOther, rr.Code)
		serve(h, postForm("/play", url.Values{"cell": {"8"}}, game.ID))

		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		require.Len(t, stored.History, 2)
		assert.Equal(t, 1, stored.CurrentMove)
		assert.Equal(t, entity.PlayerX, stored.CurrentSquares()[8])
	})

	t.Run("Jump out of range", func(t *testing.T) {
		manager, h := newTestServer(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		rr := serve(h, postForm("/jump", url.Values{"move": {"3"}}, game.ID))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Malformed form values", func(t *testing.T) {
		_, h := newTestServer(t)

		assert.Equal(t, http.StatusBadRequest, serve(h, postForm("/play", url.Values{"cell": {"x"}}, "")).Code)
		assert.Equal(t, http.StatusBadRequest, serve(h, postForm("/jump", url.Values{}, "")).Code)
	})

	t.Run("No session redirects home", func(t *testing.T) {
		_, h := newTestServer(t)

		rr := serve(h, postForm("/play", url.Values{"cell": {"0"}}, ""))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})

	t.Run("New game replaces the session", func(t *testing.T) {
		manager, h := newTestServer(t)
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		rr := serve(h, postForm("/new", url.Values{}, game.ID))

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.NotEqual(t, game.ID, gameCookie(t, rr))
		_, err = manager.GetGame(ctx, game.ID)
		require.ErrorIs(t, err, repository.ErrGameNotFound)
	})
}

func TestAPI(t *testing.T) {
	t.Run("Create, play, jump", func(t *testing.T) {
		_, h := newTestServer(t)

		// Given: a game created through the API
		rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/games", nil))
		require.Equal(t, http.StatusCreated, rr.Code)
		created := decodeView(t, rr)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, entity.PlayerX, created.Next)

		// When: X plays 0 and 1, O plays 3 and 4, X plays 2
		var view tictactoe.View
		for _, cell := range []string{"0", "3", "1", "4", "2"} {
			rr = serve(h, httptest.NewRequest(http.MethodPost, "/api/games/"+created.ID+"/play", strings.NewReader(`{"cell":`+cell+`}`)))
			require.Equal(t, http.StatusOK, rr.Code)
			view = decodeView(t, rr)
		}

		// Then: X has won
		assert.Equal(t, entity.StatusWon, view.Status)
		assert.Equal(t, entity.PlayerX, view.Winner)
		assert.Equal(t, "Winner: X", view.StatusText)

		// When: another move is attempted
		rr = serve(h, httptest.NewRequest(http.MethodPost, "/api/games/"+created.ID+"/play", strings.NewReader(`{"cell":8}`)))

		// Then: it is ignored
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, view, decodeView(t, rr))

		// When: jumping back to move 2
		rr = serve(h, httptest.NewRequest(http.MethodPost, "/api/games/"+created.ID+"/jump", strings.NewReader(`{"move":2}`)))

		// Then: the view shows that snapshot with the full history
		require.Equal(t, http.StatusOK, rr.Code)
		view = decodeView(t, rr)
		assert.Equal(t, 2, view.CurrentMove)
		assert.Len(t, view.History, 6)
		assert.Equal(t, entity.StatusOngoing, view.Status)
		assert.Equal(t, entity.PlayerX, view.Next)

		// And: GET returns the same view
		rr = serve(h, httptest.NewRequest(http.MethodGet, "/api/games/"+created.ID, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, view, decodeView(t, rr))
	})

	t.Run("Unknown game", func(t *testing.T) {
		_, h := newTestServer(t)

		rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/games/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = serve(h, httptest.NewRequest(http.MethodPost, "/api/games/nope/play", strings.NewReader(`{"cell":0}`)))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Bad requests", func(t *testing.T) {
		_, h := newTestServer(t)
		rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/games", nil))
		id := decodeView(t, rr).ID

		rr = serve(h, httptest.NewRequest(http.MethodPost, "/api/games/"+id+"/play", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = serve(h, httptest.NewRequest(http.MethodPost, "/api/games/"+id+"/jump", strings.NewReader(`not json`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = serve(h, httptest.NewRequest(http.MethodPost, "/api/games/"+id+"/jump", strings.NewReader(`{"move":7}`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
