package utils

import (
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lutrii-inc/lutrii/internal/shared/errors"
)

var validate = validator.New()

// ValidateWebhookURL checks that a merchant webhook endpoint is a well-formed
// https URL pointing at a public host. The platform POSTs payment events to
// it, so private and reserved addresses are rejected (SSRF protection).
func ValidateWebhookURL(rawURL string) error {
	if err := validate.Var(rawURL, "required,url"); err != nil {
		return errors.NewValidationError("webhook_url must be a valid URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.NewValidationError("webhook_url must be a valid URL")
	}
	if parsed.Scheme != "https" {
		return errors.NewValidationError("webhook_url must use https")
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "localhost" || strings.HasSuffix(host, ".localhost") ||
		strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return errors.NewValidationError("webhook_url cannot point at an internal host")
	}

	if ip := parseIP(host); ip != nil && isPrivateOrReservedIP(ip) {
		return errors.NewValidationError("webhook_url cannot point at a private or reserved address")
	}

	return nil
}

// parseIP handles IPv4-mapped IPv6 addresses so the range checks below see
// the IPv4 form.
func parseIP(address string) net.IP {
	ip := net.ParseIP(address)
	if ip == nil {
		return nil
	}
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	return ip
}

func isPrivateOrReservedIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return true
	}
	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}
	for _, network := range reservedNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

var reservedNetworks []*net.IPNet

func init() {
	cidrs := []string{
		"100.64.0.0/10",   // Carrier-grade NAT (RFC 6598)
		"192.0.0.0/24",    // IETF Protocol Assignments
		"192.0.2.0/24",    // TEST-NET-1
		"198.51.100.0/24", // TEST-NET-2
		"203.0.113.0/24",  // TEST-NET-3
		"224.0.0.0/4",     // Multicast
		"240.0.0.0/4",     // Reserved for future use
	}
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err == nil {
			reservedNetworks = append(reservedNetworks, network)
		}
	}
}
