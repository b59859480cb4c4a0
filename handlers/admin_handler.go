package handlers

import (
	"net/http"

	"github.com/Dosada05/kicker-tournament/services"
)

type AdminHandler struct {
	tournamentService services.TournamentService
	backupService     services.BackupService
}

func NewAdminHandler(ts services.TournamentService, bs services.BackupService) *AdminHandler {
	return &AdminHandler{
		tournamentService: ts,
		backupService:     bs,
	}
}

// ListRosterHandler godoc
// @Summary Команды из базы команд
// @Tags teams
// @Produce json
// @Success 200 {object} map[string]interface{} "Команды"
// @Failure 503 {object} map[string]string "База команд не настроена"
// @Router /roster [get]
func (h *AdminHandler) ListRosterHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := h.tournamentService.ListRosterTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EstimateDurationHandler godoc
// @Summary Калькулятор длительности турнира
// @Tags tools
// @Accept json
// @Produce json
// @Param input body services.DurationInput true "Параметры"
// @Success 200 {object} map[string]interface{} "Оценка"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Router /tools/duration [post]
func (h *AdminHandler) EstimateDurationHandler(w http.ResponseWriter, r *http.Request) {
	var input services.DurationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	estimate, err := services.EstimateDuration(input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"estimate": estimate}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SnapshotHandler godoc
// @Summary Выгрузить снимок состояния в R2
// @Tags admin
// @Produce json
// @Success 201 {object} map[string]interface{} "Снимок"
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Router /admin/snapshots [post]
func (h *AdminHandler) SnapshotHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.backupService.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"snapshot": snapshot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) ListSnapshotsHandler(w http.ResponseWriter, r *http.Request) {
	objects, err := h.backupService.ListSnapshots(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"objects": objects}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
