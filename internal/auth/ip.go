package auth

import (
	"fmt"
	"net"
)

// CanonicalizeIP converts an IP address to its canonical 16-byte string form,
// so "2001:db8::1" and "2001:db8:0:0:0:0:0:1" compare equal.
func CanonicalizeIP(ip string) (string, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	// IPv4 addresses become IPv4-mapped IPv6 addresses
	canonical := parsed.To16()
	if canonical == nil {
		return "", fmt.Errorf("failed to canonicalize IP address: %s", ip)
	}

	return canonical.String(), nil
}

// CanonicalizeIPs canonicalizes every address, failing on the first invalid one.
func CanonicalizeIPs(ips []string) ([]string, error) {
	result := make([]string, len(ips))
	for i, ip := range ips {
		canonical, err := CanonicalizeIP(ip)
		if err != nil {
			return nil, err
		}
		result[i] = canonical
	}
	return result, nil
}

// IsIPAllowed reports whether ip is in allowedIPs. An empty list allows everything.
// Both sides must already be canonical.
func IsIPAllowed(ip string, allowedIPs []string) bool {
	if len(allowedIPs) == 0 {
		return true
	}

	for _, allowed := range allowedIPs {
		if ip == allowed {
			return true
		}
	}
	return false
}
