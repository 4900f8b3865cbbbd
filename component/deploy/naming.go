package deploy

import (
	"fmt"
	"strings"
	"time"
)

const maxEndpointNameLen = 63

// UniqueEndpointName appends the unix time to base and keeps the result a
// valid endpoint name: alphanumerics and hyphens, at most 63 characters.
func UniqueEndpointName(base string, now time.Time) string {
	suffix := fmt.Sprintf("-%d", now.Unix())
	name := sanitizeName(base)
	if name == "" {
		name = "endpoint"
	}
	if len(name)+len(suffix) > maxEndpointNameLen {
		name = strings.TrimRight(name[:maxEndpointNameLen-len(suffix)], "-")
	}
	return name + suffix
}

func sanitizeName(s string) string {
	s = strings.ToLower(s)
	var sb strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == '_' || r == '.' || r == '/' || r == ' ' || r == ':':
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}
