package utils

import "strings"

const (
	DefaultScheme    = "https://"
	apiVersionSuffix = "/api/v1"
)

func stripEnd(s, suffix string) string {
	return strings.TrimSuffix(s, suffix)
}

// NormalizeHost reduces a user supplied host to scheme+host so versioned paths can be
// appended. The order of the strips matters: "host/api/v1/" becomes "https://host".
func NormalizeHost(host string) string {
	if !strings.HasPrefix(host, DefaultScheme) {
		host = DefaultScheme + host
	}
	host = stripEnd(host, "/")
	host = stripEnd(host, apiVersionSuffix)
	host = stripEnd(host, "/")
	return host
}
