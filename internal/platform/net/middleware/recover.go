package middleware

import (
	"net/http"
	"runtime/debug"

	perr "chimera/internal/platform/errors"
	"chimera/internal/platform/logger"
	phttp "chimera/internal/platform/net/http"
)

// RecoverJSON turns a panic into the standard 500 envelope and logs the stack
// http.ErrAbortHandler is re-panicked so the server can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.Error(perr.New(perr.ErrorCodePanic, "internal error")).Write(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
