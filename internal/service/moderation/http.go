package moderation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
	"github.com/Mikheydazz/starmatch-bot/internal/server"
)

var validate = validator.New()

type reportRequest struct {
	ReportedUserID string `json:"reported_user_id" validate:"required"`
	ReporterUserID string `json:"reporter_user_id" validate:"required"`
	Reason         string `json:"reason" validate:"max=255"`
}

type banRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Reason   string `json:"reason" validate:"max=255"`
	BannedBy string `json:"banned_by" validate:"required"`
}

func decodeValid(req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return apperr.Validation("%v", err)
	}
	return nil
}

func (s *Service) handleAddReport(w http.ResponseWriter, req *http.Request) {
	var body reportRequest
	if err := decodeValid(req, &body); err != nil {
		server.RespondError(w, err)
		return
	}

	result, err := s.AddReport(req.Context(), body.ReportedUserID, body.ReporterUserID, body.Reason)
	if err != nil {
		s.appCtx.Logger.Error("report failed",
			"reported", body.ReportedUserID, "reporter", body.ReporterUserID, "err", err)
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, result)
}

func (s *Service) handleVisibility(w http.ResponseWriter, req *http.Request) {
	visible, err := s.IsVisible(req.Context(), chi.URLParam(req, "userID"))
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]bool{"visible": visible})
}

func (s *Service) handleBan(w http.ResponseWriter, req *http.Request) {
	var body banRequest
	if err := decodeValid(req, &body); err != nil {
		server.RespondError(w, err)
		return
	}

	if err := s.Ban(req.Context(), body.UserID, body.Reason, body.BannedBy); err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]string{"status": "banned"})
}

func (s *Service) handleUnban(w http.ResponseWriter, req *http.Request) {
	if err := s.Unban(req.Context(), chi.URLParam(req, "userID")); err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]string{"status": "unbanned"})
}

func (s *Service) handleMostReported(w http.ResponseWriter, req *http.Request) {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	rows, err := s.MostReported(req.Context(), limit)
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]any{"users": rows})
}

func (s *Service) handleUserReports(w http.ResponseWriter, req *http.Request) {
	reports, err := s.ReportsFor(req.Context(), chi.URLParam(req, "userID"))
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Service) handleBannedUsers(w http.ResponseWriter, req *http.Request) {
	bans, err := s.BannedUsers(req.Context())
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]any{"bans": bans})
}
