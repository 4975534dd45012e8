package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TrustedProxies installs an IP extractor that honors X-Real-IP and
// X-Forwarded-For only when the TCP peer lies inside one of the given
// CIDRs. Rate limiting keys on c.RealIP(), so an untrusted peer must never
// be able to pick its own identity via a header.
func TrustedProxies(e *echo.Echo, trustedCIDRs []string) {
	nets := make([]*net.IPNet, 0, len(trustedCIDRs))
	for _, cidr := range trustedCIDRs {
		if _, n, err := net.ParseCIDR(cidr); err == nil {
			nets = append(nets, n)
		}
	}

	e.IPExtractor = func(req *http.Request) string {
		peer := peerIP(req.RemoteAddr)
		if !cidrsContain(nets, peer) {
			return peer
		}
		if real := strings.TrimSpace(req.Header.Get("X-Real-IP")); real != "" {
			return real
		}
		if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
			// Leftmost entry is the originating client.
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
		return peer
	}
}

// peerIP strips the port from a RemoteAddr "host:port" string.
func peerIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func cidrsContain(nets []*net.IPNet, ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
