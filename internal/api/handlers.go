package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"danishdeck/internal/domain"
	"danishdeck/internal/importer"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	maxBodyBytes   = 1 << 20
	maxUploadBytes = 10 << 20

	defaultEventCount = 50
)

var errBadRequest = errors.New("bad request")

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (s *Server) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, authResponse{
		Token: token,
		User:  userView{ID: user.ID, Email: user.Email, CreatedAt: &user.CreatedAt},
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.services.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondWithToken(w, r, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.services.Auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondWithToken(w, r, http.StatusOK, user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	writeJSON(w, http.StatusOK, userView{ID: claims.Subject, Email: claims.Email})
}

func (s *Server) handleListPhrases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PhraseFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}

	phrases, err := s.services.Phrases.Filter(r.Context(), claimsFrom(r.Context()).Subject, filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, phrases)
}

func (s *Server) handleAddPhrase(w http.ResponseWriter, r *http.Request) {
	var in domain.PhraseInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	phrase, err := s.services.Phrases.Add(r.Context(), claimsFrom(r.Context()).Subject, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, phrase)
}

func (s *Server) handleUpdatePhrase(w http.ResponseWriter, r *http.Request) {
	var upd domain.PhraseUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.services.Phrases.Update(r.Context(), claimsFrom(r.Context()).Subject, mux.Vars(r)["id"], upd); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePhrase(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Phrases.Delete(r.Context(), claimsFrom(r.Context()).Subject, mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct bool `json:"correct"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	phrase, err := s.services.Phrases.RecordPractice(r.Context(), claimsFrom(r.Context()).Subject, mux.Vars(r)["id"], req.Correct)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if phrase == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "phrase not found"})
		return
	}
	writeJSON(w, http.StatusOK, phrase)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: multipart field \"file\" is required", errBadRequest))
		return
	}
	defer file.Close()

	format, err := importer.FormatFromName(header.Filename)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	inputs, err := importer.Read(file, format, importer.DefaultConfig())
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	result, err := s.services.Phrases.Import(r.Context(), claimsFrom(r.Context()).Subject, inputs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.services.Practice.Sessions(r.Context(), claimsFrom(r.Context()).Subject)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleAddSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode               domain.Mode `json:"mode"`
		ItemsReviewedCount int         `json:"items_reviewed_count"`
		CorrectCount       int         `json:"correct_count"`
		IncorrectCount     int         `json:"incorrect_count"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.services.Practice.AddSession(r.Context(), claimsFrom(r.Context()).Subject,
		req.Mode, req.ItemsReviewedCount, req.CorrectCount, req.IncorrectCount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	d, err := s.services.Practice.Dashboard(r.Context(), claimsFrom(r.Context()).Subject)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	meaning, found := s.services.Translation.Translate(req.Text)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"text":    req.Text,
		"meaning": meaning,
		"found":   found,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string               `json:"message"`
		History []domain.ChatMessage `json:"history"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Message == "" {
		s.writeError(w, r, fmt.Errorf("message: %w", errBadRequest))
		return
	}

	userID := claimsFrom(r.Context()).Subject
	phrases, err := s.services.Phrases.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.services.Chat.Unlocked(len(phrases)) {
		s.writeError(w, r, errChatLocked)
		return
	}

	if len(req.History) == 0 {
		if err := s.services.Events.Track(r.Context(), userID, domain.EventChatStarted, nil); err != nil {
			s.logger.Warn("Failed to track chat start", zap.String("user_id", userID), zap.Error(err))
		}
	}

	reply := s.services.Chat.Reply(r.Context(), phrases, req.History, req.Message)
	if err := s.services.Events.Track(r.Context(), userID, domain.EventChatMessage, nil); err != nil {
		s.logger.Warn("Failed to track chat message", zap.String("user_id", userID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Event string                 `json:"event"`
		Data  map[string]interface{} `json:"data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Event == "" {
		s.writeError(w, r, fmt.Errorf("event: %w", errBadRequest))
		return
	}

	if err := s.services.Events.Track(r.Context(), claimsFrom(r.Context()).Subject, req.Event, req.Data); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleListEvents returns the caller's newest events, newest first
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	n := defaultEventCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, r, fmt.Errorf("n: %w", errBadRequest))
			return
		}
		n = parsed
	}
	if n > domain.EventLogLimit {
		n = domain.EventLogLimit
	}

	events, err := s.services.Events.Recent(r.Context(), claimsFrom(r.Context()).Subject, n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
