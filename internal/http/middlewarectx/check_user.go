package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/referral-portal/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionKey ключ сессии, пропущенной шлюзом
const SessionKey Key = "session"

// WithSession кладёт сессию в контекст.
func WithSession(ctx context.Context, sess models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// SessionFromContext достаёт сессию, положенную шлюзом. Вне защищённых
// областей сессии в контексте нет.
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(models.Session)
	return sess, ok
}
