package handler

import (
	"context"
	"sync"

	"danishdeck/internal/app"
	"danishdeck/internal/domain"
	"danishdeck/internal/middleware"
	"danishdeck/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError         = "Something went wrong. Please try again later."
	msgLoginRequired = "🔒 Please /login or /signup first."
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	auth        *service.AuthService
	events      *service.EventService
	phrases     *service.PhraseService
	practice    *service.PracticeService
	translation *service.TranslationService
	chat        *service.ChatService
	logger      *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Serializes updates of one user
	userLocks map[int64]*sync.Mutex
	lockMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, services *app.App, logger *zap.Logger) *Handler {
	return &Handler{
		bot:         bot,
		auth:        services.Auth,
		events:      services.Events,
		phrases:     services.Phrases,
		practice:    services.Practice,
		translation: services.Translation,
		chat:        services.Chat,
		logger:      logger,
		states:      make(map[int64]*domain.StateData),
		userLocks:   make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Open commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/signup", h.handleSignup)
	h.bot.Handle("/login", h.handleLogin)
	h.bot.Handle("/stop", h.handleStop)

	// Commands that need a current user
	protected := h.bot.Group()
	protected.Use(middleware.AuthMiddleware(h.auth, h.logger))
	protected.Handle("/logout", h.handleLogout)
	protected.Handle("/add", h.handleAdd)
	protected.Handle("/library", h.handleLibrary)
	protected.Handle("/practice", h.handlePractice)
	protected.Handle("/stats", h.handleStats)
	protected.Handle("/translate", h.handleTranslate)
	protected.Handle("/chat", h.handleChat)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	copied := *state
	return &copied
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// lockUser blocks until no other update of the same user is being processed
func (h *Handler) lockUser(userID int64) func() {
	h.lockMux.Lock()
	lock, exists := h.userLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.userLocks[userID] = lock
	}
	h.lockMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

// currentUser returns the user set by the auth middleware, falling back to a store lookup
func (h *Handler) currentUser(c tele.Context) *domain.User {
	if user := middleware.CurrentUser(c); user != nil {
		return user
	}
	user := h.auth.CurrentUser(context.Background(), middleware.Scope(c))
	if user != nil {
		c.Set(middleware.UserKey, user)
	}
	return user
}

// track records an analytics event; failures are only logged
func (h *Handler) track(userID, name string, data map[string]interface{}) {
	if err := h.events.Track(context.Background(), userID, name, data); err != nil {
		h.logger.Warn("Failed to track event", zap.String("event", name), zap.Error(err))
	}
}

// Inline keyboard buttons
var (
	btnAdd = tele.Btn{
		Unique: "menu",
		Text:   "➕ Add phrase",
		Data:   "add",
	}
	btnLibrary = tele.Btn{
		Unique: "menu",
		Text:   "📚 Library",
		Data:   "library",
	}
	btnPractice = tele.Btn{
		Unique: "menu",
		Text:   "🎯 Practice",
		Data:   "practice",
	}
	btnStats = tele.Btn{
		Unique: "menu",
		Text:   "📊 Progress",
		Data:   "stats",
	}
	btnChat = tele.Btn{
		Unique: "menu",
		Text:   "💬 Chat",
		Data:   "chat",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAdd, btnLibrary),
		menu.Row(btnPractice, btnStats),
		menu.Row(btnChat),
	)
	return menu
}

// cancelMarkup returns a keyboard with a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
