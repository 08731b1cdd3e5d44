package match

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
	"github.com/Mikheydazz/starmatch-bot/internal/repository"
	"github.com/Mikheydazz/starmatch-bot/internal/server"
)

var validate = validator.New()

type likeRequest struct {
	FromUserID string `json:"from_user_id" validate:"required"`
	ToUserID   string `json:"to_user_id" validate:"required"`
}

type profileRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	Birthday string `json:"birthday" validate:"required"`
	Bio      string `json:"bio" validate:"required"`
	City     string `json:"city" validate:"max=64"`
	PhotoID  string `json:"photo_id" validate:"max=128"`
}

type topUpRequest struct {
	Amount      int    `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"max=255"`
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

func (s *Service) handleLike(w http.ResponseWriter, req *http.Request) {
	var body likeRequest
	if err := decodeValid(req, &body); err != nil {
		server.RespondError(w, err)
		return
	}

	result, err := s.Like(req.Context(), body.FromUserID, body.ToUserID)
	if err != nil {
		s.appCtx.Logger.Error("like failed", "from", body.FromUserID, "to", body.ToUserID, "err", err)
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, result)
}

func (s *Service) handleScoreDates(w http.ResponseWriter, req *http.Request) {
	dateA := req.URL.Query().Get("date_a")
	dateB := req.URL.Query().Get("date_b")
	if dateA == "" || dateB == "" {
		server.RespondError(w, apperr.Validation("date_a and date_b are required"))
		return
	}

	result, err := s.ScoreDates(dateA, dateB)
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, result)
}

func (s *Service) handleCheckCompatibility(w http.ResponseWriter, req *http.Request) {
	userID := chi.URLParam(req, "userID")
	targetID := chi.URLParam(req, "targetID")

	result, err := s.CheckCompatibility(req.Context(), userID, targetID)
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, result)
}

func (s *Service) handleSaveProfile(w http.ResponseWriter, req *http.Request) {
	var body profileRequest
	if err := decodeValid(req, &body); err != nil {
		server.RespondError(w, err)
		return
	}

	user, err := s.SaveProfile(req.Context(), ProfileInput{
		UserID:   chi.URLParam(req, "userID"),
		Name:     body.Name,
		Gender:   body.Gender,
		Birthday: body.Birthday,
		Bio:      body.Bio,
		City:     body.City,
		PhotoID:  body.PhotoID,
	})
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, user)
}

func (s *Service) handleProfile(w http.ResponseWriter, req *http.Request) {
	user, err := s.Profile(req.Context(), chi.URLParam(req, "userID"))
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, user)
}

func (s *Service) handleBrowse(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	filter := repository.BrowseFilter{
		Gender: q.Get("gender"),
		Zodiac: q.Get("zodiac"),
		City:   q.Get("city"),
	}

	var token *string
	if t := q.Get("page_token"); t != "" {
		token = &t
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	users, next, err := s.Browse(req.Context(), chi.URLParam(req, "userID"), filter, token, limit)
	if err != nil {
		server.RespondError(w, err)
		return
	}

	resp := map[string]any{"users": users}
	if next != nil {
		resp["next_page_token"] = *next
	}
	server.RespondJSON(w, http.StatusOK, resp)
}

func (s *Service) handleMatches(w http.ResponseWriter, req *http.Request) {
	users, err := s.Matches(req.Context(), chi.URLParam(req, "userID"))
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]any{"matches": users})
}

func (s *Service) handleLikeCount(w http.ResponseWriter, req *http.Request) {
	count, err := s.LikeCount(req.Context(), chi.URLParam(req, "userID"))
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (s *Service) handleTopUp(w http.ResponseWriter, req *http.Request) {
	var body topUpRequest
	if err := decodeValid(req, &body); err != nil {
		server.RespondError(w, err)
		return
	}

	payment, err := s.TopUp(req.Context(), chi.URLParam(req, "userID"), body.Amount, body.Description)
	if err != nil {
		server.RespondError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusCreated, payment)
}
