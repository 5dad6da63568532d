package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"

	"healthinfo-simplifier/pkg/config"
)

// IPExtractor returns the client IP of a request. The rate limiter keys its
// buckets on it.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor keys on the TCP peer. Use it when nothing sits in
// front of the server.
type RemoteAddrExtractor struct{}

// ExtractIP implements IPExtractor.
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	addr, err := peerAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// TrustedProxyConfig lists the reverse proxies allowed to report the
// client address through forwarding headers.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr is inside one of the allowed ranges.
func (c TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	addr, err := peerAddr(remoteAddr)
	return err == nil && c.contains(addr)
}

func (c TrustedProxyConfig) contains(addr netip.Addr) bool {
	for _, p := range c.AllowedCIDRs {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig reads TRUST_PROXY and TRUSTED_PROXIES, a comma
// separated list of IPs or CIDRs. Trust with an empty list is rejected.
func LoadTrustedProxyConfig() (TrustedProxyConfig, error) {
	var cfg TrustedProxyConfig
	if cfg.Enabled = config.GetEnvBool("TRUST_PROXY", false); !cfg.Enabled {
		return cfg, nil
	}

	prefixes, err := ParseCIDRs(config.GetEnvStringList("TRUSTED_PROXIES", nil))
	switch {
	case err != nil:
		return cfg, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	case len(prefixes) == 0:
		return cfg, errors.New("TRUST_PROXY is enabled but TRUSTED_PROXIES is empty")
	}
	cfg.AllowedCIDRs = prefixes
	return cfg, nil
}

// ParseCIDRs turns each entry into a masked prefix. A bare address becomes
// a single-host prefix; blank entries are skipped.
func ParseCIDRs(values []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			addr, err := netip.ParseAddr(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid IP %q: %w", raw, err)
			}
			out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		p, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR %q: %w", raw, err)
		}
		out = append(out, p.Masked())
	}
	return out, nil
}

// TrustedProxyExtractor believes X-Forwarded-For, then X-Real-IP, when the
// peer is a trusted proxy. Any other peer is keyed on its own address.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor creates a TrustedProxyExtractor.
func NewTrustedProxyExtractor(cfg TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: cfg}
}

// ExtractIP implements IPExtractor.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	peer, err := peerAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if !e.config.Enabled {
		return peer.String(), nil
	}

	if !e.config.contains(peer) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.WarnContext(r.Context(), "ignoring X-Forwarded-For from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return peer.String(), nil
	}

	client, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	for _, candidate := range []string{client, r.Header.Get("X-Real-IP")} {
		if addr, err := netip.ParseAddr(strings.TrimSpace(candidate)); err == nil {
			return addr.Unmap().String(), nil
		}
	}
	return peer.String(), nil
}

// peerAddr parses "host:port", "[v6]:port" or a bare address.
func peerAddr(remote string) (netip.Addr, error) {
	if ap, err := netip.ParseAddrPort(remote); err == nil {
		return ap.Addr().Unmap(), nil
	}
	addr, err := netip.ParseAddr(strings.TrimSuffix(strings.TrimPrefix(remote, "["), "]"))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid remote address %q", remote)
	}
	return addr.Unmap(), nil
}
