package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ParseHostNoPort returns the host part (no port) from strings like "ip:port", "[v6]:port", or "ip".
func ParseHostNoPort(s string) string {
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return strings.Trim(s, "[]")
}

// FirstForwardedFor returns the first IP from X-Forwarded-For (left-most), trimmed.
func FirstForwardedFor(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// ClientIP resolves the real client IP.
// If trustProxy is true, prefers CF-Connecting-IP, X-Forwarded-For (first), then X-Real-IP.
// Otherwise falls back to RemoteAddr only.
//
// NOTE: Use trustProxy=true only when the origin is reachable solely through a trusted reverse proxy/tunnel.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		candidates := []string{
			strings.TrimSpace(r.Header.Get("CF-Connecting-IP")),
			FirstForwardedFor(r.Header.Get("X-Forwarded-For")),
			strings.TrimSpace(r.Header.Get("X-Real-IP")),
		}
		for _, v := range candidates {
			if ip := ParseHostNoPort(v); ip != "" {
				return ip
			}
		}
	}
	return ParseHostNoPort(r.RemoteAddr)
}

// IPMatcher matches exact IPs and CIDRs.
type IPMatcher struct {
	addrs    []netip.Addr
	prefixes []netip.Prefix
}

func NewIPMatcher(list []string) *IPMatcher {
	m := &IPMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			m.addrs = append(m.addrs, a.Unmap())
		}
	}
	return m
}

func (m *IPMatcher) IsEmpty() bool {
	return len(m.addrs) == 0 && len(m.prefixes) == 0
}

func (m *IPMatcher) Allow(ipStr string) bool {
	ip, err := netip.ParseAddr(ipStr)
	if err != nil {
		return false
	}
	ip = ip.Unmap()
	for _, a := range m.addrs {
		if a == ip {
			return true
		}
	}
	for _, p := range m.prefixes {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// HostMatcher matches hostnames against a list of allowed domains.
// An entry allows the domain itself and any subdomain of it.
type HostMatcher struct {
	domains []string
}

func NewHostMatcher(list []string) *HostMatcher {
	m := &HostMatcher{}
	for _, raw := range list {
		d := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "."))
		if d != "" {
			m.domains = append(m.domains, d)
		}
	}
	return m
}

func (m *HostMatcher) IsEmpty() bool {
	return len(m.domains) == 0
}

func (m *HostMatcher) Allow(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(ParseHostNoPort(host), "."))
	if host == "" {
		return false
	}
	for _, d := range m.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
