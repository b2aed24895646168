package security

import (
	"fmt"
	"mime"
	"net"
	"net/http"
	"strings"
	"sync/atomic"

	"budgetmaster/internal/log"
)

// DefaultMaxBodyBytes bounds request bodies; single records are small.
const DefaultMaxBodyBytes = 64 << 10

// GuardMetrics counts rejected requests.
type GuardMetrics struct {
	Rejected         int64 `json:"rejected"`
	UnsupportedMedia int64 `json:"unsupportedMedia"`
}

// Guard rejects requests the API never serves and resolves client IPs
// behind trusted proxies.
type Guard struct {
	maxBodyBytes   int64
	trustedProxies []*net.IPNet
	logger         *log.Logger

	rejected         int64
	unsupportedMedia int64
}

// NewGuard returns a guard capping bodies at maxBodyBytes and trusting the
// loopback and private ranges as proxies.
func NewGuard(logger *log.Logger, maxBodyBytes int64) *Guard {
	if logger == nil {
		logger = log.Discard()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Guard{
		maxBodyBytes: maxBodyBytes,
		logger:       logger.WithComponent(log.ComponentSecurity),
		trustedProxies: []*net.IPNet{
			mustCIDR("127.0.0.0/8"),
			mustCIDR("::1/128"),
			mustCIDR("10.0.0.0/8"),
			mustCIDR("172.16.0.0/12"),
			mustCIDR("192.168.0.0/16"),
		},
	}
}

func mustCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("parse trusted proxy CIDR %s: %v", cidr, err))
	}
	return network
}

// AddTrustedProxy adds a trusted proxy network
func (g *Guard) AddTrustedProxy(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", cidr, err)
	}
	g.trustedProxies = append(g.trustedProxies, network)
	return nil
}

// Suspicious reports requests with traversal sequences, unusual methods or
// oversized URLs.
func (g *Guard) Suspicious(r *http.Request) bool {
	switch r.Method {
	case "TRACE", "TRACK", "DEBUG", "CONNECT":
		return true
	}
	if len(r.URL.String()) > 2048 {
		return true
	}
	target := strings.ToLower(r.URL.Path + "?" + r.URL.RawQuery)
	for _, p := range []string{"../", "..\\", "%2e%2e", ".env", ".git", "etc/passwd"} {
		if strings.Contains(target, p) {
			return true
		}
	}
	return false
}

// Middleware rejects suspicious requests, requires JSON bodies on writes
// and caps body size.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.Suspicious(r) {
			atomic.AddInt64(&g.rejected, 1)
			g.logger.WarnContext(r.Context(), "Rejected suspicious request",
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				log.FieldClientIP, g.ClientIP(r))
			writeJSONError(w, http.StatusBadRequest, "bad request")
			return
		}

		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if r.ContentLength != 0 && !isJSON(r.Header.Get("Content-Type")) {
				atomic.AddInt64(&g.unsupportedMedia, 1)
				writeJSONError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, g.maxBodyBytes)
		}

		next.ServeHTTP(w, r)
	})
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, "{\"error\":%q}\n", msg)
}

// ClientIP returns the caller's address, honouring X-Forwarded-For and
// X-Real-IP only from trusted proxies.
func (g *Guard) ClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}
	parsed := net.ParseIP(directIP)
	if parsed == nil || !g.isTrustedProxy(parsed) {
		return directIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}
	return directIP
}

func (g *Guard) isTrustedProxy(ip net.IP) bool {
	for _, network := range g.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func (g *Guard) GetMetrics() GuardMetrics {
	return GuardMetrics{
		Rejected:         atomic.LoadInt64(&g.rejected),
		UnsupportedMedia: atomic.LoadInt64(&g.unsupportedMedia),
	}
}
