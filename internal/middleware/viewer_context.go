package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const viewerKey ctxKey = "viewer"

// ViewerContext lee la identidad del viewer del header X-Viewer-ID (modo dev,
// misma postura que un debug header: sin verificación).
// Si no viene, el request sigue igual; cada handler decide si exige identidad.
func ViewerContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get("X-Viewer-ID")); id != "" {
			ctx := context.WithValue(r.Context(), viewerKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetViewer(ctx context.Context) (string, bool) {
	v := ctx.Value(viewerKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
