package utils

import (
	"fmt"
	"strings"
)

// RoutingDomain returns the part of rcptTo after the "@". An address without one is a
// caller bug and panics rather than producing a record with an empty routing domain.
func RoutingDomain(rcptTo string) string {
	parts := strings.Split(rcptTo, "@")
	if len(parts) < 2 {
		panic(fmt.Sprintf("recipient %q has no domain part", rcptTo))
	}
	return parts[1]
}

func BuildAddress(localPart, domain string) string {
	return localPart + "@" + domain
}
