package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
)

// validateURL accepts only absolute http(s) URLs. With denyPrivate set the
// host must also resolve to public addresses only; one private record is
// enough to reject it.
func validateURL(ctx context.Context, raw string, denyPrivate bool) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if !denyPrivate {
		return nil
	}

	addrs, err := resolve(ctx, host)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrInvalidURL, host, err)
	}
	for _, addr := range addrs {
		if isPrivateIP(addr) {
			return fmt.Errorf("%w: %s resolves to %s", ErrPrivateIP, host, addr)
		}
	}
	return nil
}

// resolve skips DNS for literal addresses.
func resolve(ctx context.Context, host string) ([]netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{addr}, nil
	}
	return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
}

// isPrivateIP reports loopback, RFC 1918 and RFC 4193 ranges, link-local
// and the unspecified address. IPv4-mapped IPv6 is checked as IPv4.
func isPrivateIP(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}
