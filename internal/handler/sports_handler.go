package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	filter := domain.GameFilter{
		Sport:  q.Get("sport"),
		League: q.Get("league"),
		Status: domain.GameStatus(q.Get("status")),
		TeamID: q.Get("team_id"),
		Limit:  limit,
		Offset: offset,
	}

	games, err := h.gameService.ListGames(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, domainGameToHTTP(g))
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": out, "count": len(out)})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameService.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainGameToHTTP(game))
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	created, err := h.gameService.CreateGame(r.Context(), httpGameToDomain(req))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainGameToHTTP(created))
}

func (h *Handler) UpdateGameScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	updated, err := h.gameService.UpdateScore(r.Context(), mux.Vars(r)["id"], service.ScoreUpdate{
		Status:    domain.GameStatus(req.Status),
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainGameToHTTP(updated))
}

// ListLeagues returns the leagues the content pipeline recognises.
func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues := leaguesToHTTP(content.Leagues())
	writeJSON(w, http.StatusOK, map[string]any{"leagues": leagues, "count": len(leagues)})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teams, err := h.teamService.ListTeams(r.Context(), q.Get("sport"), q.Get("league"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, domainTeamToHTTP(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": out, "count": len(out)})
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	details, err := h.teamService.GetTeam(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TeamDetailsResponse{
		TeamResponse: domainTeamToHTTP(details.Team),
		Players:      domainPlayersToHTTP(details.Players),
	})
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	created, err := h.teamService.CreateTeam(r.Context(), httpTeamToDomain(req))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainTeamToHTTP(created))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context(), r.URL.Query().Get("team_id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	out := domainPlayersToHTTP(players)
	writeJSON(w, http.StatusOK, map[string]any{"players": out, "count": len(out)})
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.playerService.GetPlayer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainPlayerToHTTP(player))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	created, err := h.playerService.CreatePlayer(r.Context(), httpPlayerToDomain(req))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainPlayerToHTTP(created))
}
