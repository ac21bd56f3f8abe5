// internal/middleware/context_extractor.go
package middleware

import (
	"context"
	"net"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type clientInfoKey struct{}

// ClientInfo is the per-request client metadata used by security and
// request logging. The auth middleware fills in the user fields.
type ClientInfo struct {
	RequestID string
	IPAddress string
	UserAgent string
	UserID    int64
	UserEmail string
}

// ClientInfoMiddleware records the caller's address and user agent. Run it
// after chi's RealIP when the service sits behind a trusted proxy.
func ClientInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &ClientInfo{
			RequestID: chimw.GetReqID(r.Context()),
			IPAddress: extractIPAddress(r.RemoteAddr),
			UserAgent: r.UserAgent(),
		}
		next.ServeHTTP(w, r.WithContext(WithClientInfo(r.Context(), info)))
	})
}

func WithClientInfo(ctx context.Context, info *ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey{}, info)
}

// extractIPAddress strips the port from a remote address
func extractIPAddress(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// GetClientInfoFromContext returns the request's client info, or an empty
// value when none was recorded.
func GetClientInfoFromContext(ctx context.Context) *ClientInfo {
	if info, ok := ctx.Value(clientInfoKey{}).(*ClientInfo); ok && info != nil {
		return info
	}
	return &ClientInfo{}
}
