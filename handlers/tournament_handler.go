package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dosada05/kicker-tournament/models"
	"github.com/Dosada05/kicker-tournament/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// pathParam returns an unescaped URL parameter. Tournament names and knockout
// rounds may contain spaces.
func pathParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	value, err := url.PathUnescape(raw)
	if err != nil {
		value = raw
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("missing " + key + " in URL path")
	}
	return value, nil
}

func (h *TournamentHandler) respondTournament(w http.ResponseWriter, r *http.Request, status int, tournament *models.Tournament, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, status, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Success 200 {object} map[string]interface{} "Турниры"
// @Router /tournaments [get]
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler godoc
// @Summary Создать турнир
// @Tags tournaments
// @Description Новый турнир становится текущим. num_groups: 0, 1, 2 или 4 (по умолчанию 2).
// @Accept json
// @Produce json
// @Param input body services.CreateTournamentInput true "Турнир"
// @Success 201 {object} map[string]interface{} "Турнир создан"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 409 {object} map[string]string "Имя уже занято"
// @Router /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), input)
	h.respondTournament(w, r, http.StatusCreated, tournament, err)
}

// CurrentHandler обрабатывает GET /tournaments/current
func (h *TournamentHandler) CurrentHandler(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.tournamentService.CurrentTournament(r.Context())
	h.respondTournament(w, r, http.StatusOK, tournament, err)
}

// GetHandler godoc
// @Summary Получить турнир
// @Tags tournaments
// @Produce json
// @Param name path string true "Tournament name"
// @Success 200 {object} map[string]interface{} "Турнир"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{name} [get]
func (h *TournamentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.GetTournament(r.Context(), name)
	h.respondTournament(w, r, http.StatusOK, tournament, err)
}

func (h *TournamentHandler) SelectHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.SelectTournament(r.Context(), name)
	h.respondTournament(w, r, http.StatusOK, tournament, err)
}

// AddTeamHandler godoc
// @Summary Добавить команду
// @Tags teams
// @Accept json
// @Produce json
// @Param name path string true "Tournament name"
// @Param input body services.AddTeamInput true "Команда"
// @Success 201 {object} map[string]interface{} "Турнир с новой командой"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 409 {object} map[string]string "Имя занято или расписание уже создано"
// @Router /tournaments/{name}/teams [post]
func (h *TournamentHandler) AddTeamHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.AddTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.AddTeam(r.Context(), name, input)
	h.respondTournament(w, r, http.StatusCreated, tournament, err)
}

type importTeamsRequest struct {
	Teams []string `json:"teams"`
}

// ImportTeamsHandler обрабатывает POST /tournaments/{name}/teams/import
func (h *TournamentHandler) ImportTeamsHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input importTeamsRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.ImportTeams(r.Context(), name, input.Teams)
	h.respondTournament(w, r, http.StatusCreated, tournament, err)
}

type assignGroupsRequest struct {
	// команда -> метка группы
	Assignment map[string]string `json:"assignment"`
}

func (h *TournamentHandler) AssignGroupsHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input assignGroupsRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.AssignGroups(r.Context(), name, input.Assignment)
	h.respondTournament(w, r, http.StatusOK, tournament, err)
}

func (h *TournamentHandler) DrawGroupsHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.DrawGroups(r.Context(), name)
	h.respondTournament(w, r, http.StatusOK, tournament, err)
}

// GenerateScheduleHandler godoc
// @Summary Создать расписание группового этапа
// @Tags matches
// @Produce json
// @Param name path string true "Tournament name"
// @Success 201 {object} map[string]interface{} "Турнир с расписанием"
// @Failure 409 {object} map[string]string "Расписание уже создано или мало команд"
// @Router /tournaments/{name}/schedule [post]
func (h *TournamentHandler) GenerateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.GenerateSchedule(r.Context(), name)
	h.respondTournament(w, r, http.StatusCreated, tournament, err)
}

// RecordGroupScoreHandler godoc
// @Summary Записать счёт группового матча
// @Tags matches
// @Accept json
// @Produce json
// @Param name path string true "Tournament name"
// @Param matchNumber path int true "Match number"
// @Param input body services.ScoreInput true "Голы"
// @Success 200 {object} map[string]interface{} "Обновлённый турнир"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 422 {object} map[string]string "Невалидный счёт (по полям)"
// @Router /tournaments/{name}/matches/{matchNumber} [put]
func (h *TournamentHandler) RecordGroupScoreHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchNumber, err := getMatchNumberFromURL(r, "matchNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.RecordGroupScore(r.Context(), name, matchNumber, input)
	h.respondTournament(w, r, http.StatusOK, tournament, err)
}

// StandingsHandler godoc
// @Summary Таблицы групп
// @Tags standings
// @Produce json
// @Param name path string true "Tournament name"
// @Success 200 {object} map[string]interface{} "Таблицы"
// @Router /tournaments/{name}/standings [get]
func (h *TournamentHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	standings, err := h.tournamentService.Standings(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ProgressHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	progress, err := h.tournamentService.Progress(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"progress": progress}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type generateKnockoutRequest struct {
	Quarterfinals bool `json:"quarterfinals"`
}

// GenerateKnockoutHandler godoc
// @Summary Сформировать KO-сетку
// @Tags knockout
// @Accept json
// @Produce json
// @Param name path string true "Tournament name"
// @Param input body generateKnockoutRequest true "С четвертьфиналами или без"
// @Success 201 {object} map[string]interface{} "Турнир с сеткой"
// @Failure 409 {object} map[string]string "Сетка уже создана или мало команд"
// @Router /tournaments/{name}/knockout [post]
func (h *TournamentHandler) GenerateKnockoutHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input generateKnockoutRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.GenerateKnockout(r.Context(), name, input.Quarterfinals)
	h.respondTournament(w, r, http.StatusCreated, tournament, err)
}

// RecordKnockoutScoreHandler обрабатывает PUT /tournaments/{name}/knockout/{round}
func (h *TournamentHandler) RecordKnockoutScoreHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	round, err := pathParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.RecordKnockoutScore(r.Context(), name, models.KnockoutRound(round), input)
	h.respondTournament(w, r, http.StatusOK, tournament, err)
}

func (h *TournamentHandler) AdvanceKnockoutHandler(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.AdvanceKnockout(r.Context(), name)
	h.respondTournament(w, r, http.StatusOK, tournament, err)
}
