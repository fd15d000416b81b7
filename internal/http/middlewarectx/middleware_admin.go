package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/iulcalcpro/subscription-service/internal/http/response"
)

// AdminMiddleware создает middleware, пропускающее дальше только
// пользователей с ролью admin. Единая точка проверки роли для всех
// привилегированных маршрутов.
func AdminMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role != "admin" {
				log.Error("admin access denied", slog.String("role", role))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
