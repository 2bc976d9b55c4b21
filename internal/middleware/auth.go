package middleware

import (
	"context"
	"strconv"

	"danishdeck/internal/domain"
	"danishdeck/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// UserKey is the context key under which the current user is stored
const UserKey = "user"

const msgLoginRequired = "🔒 Please /login or /signup first."

// Scope returns the session scope of the sender: one current user per Telegram account
func Scope(c tele.Context) string {
	return strconv.FormatInt(c.Sender().ID, 10)
}

// CurrentUser returns the user stored by AuthMiddleware, or nil
func CurrentUser(c tele.Context) *domain.User {
	user, _ := c.Get(UserKey).(*domain.User)
	return user
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := authService.CurrentUser(context.Background(), Scope(c))
			if user == nil {
				logger.Debug("Rejected unauthenticated update",
					zap.Int64("sender_id", c.Sender().ID),
					zap.String("text", c.Text()),
				)
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: msgLoginRequired, ShowAlert: true})
				}
				return c.Send(msgLoginRequired)
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}
