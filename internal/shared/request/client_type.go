package request

import "strings"

const (
	ClientTypeWeb    = "WEB"
	ClientTypeMobile = "MOBILE"
	ClientTypeAPI    = "API"
)

// ResolveClientType prefers the explicit X-Client-Type header and falls back
// to sniffing the user agent.
func ResolveClientType(header, userAgent string) string {
	switch strings.ToUpper(strings.TrimSpace(header)) {
	case ClientTypeWeb:
		return ClientTypeWeb
	case ClientTypeMobile:
		return ClientTypeMobile
	case ClientTypeAPI:
		return ClientTypeAPI
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "mozilla") || strings.Contains(ua, "chrome") || strings.Contains(ua, "safari") {
		return ClientTypeWeb
	}
	return ClientTypeAPI
}

func IsWebClient(clientType string) bool {
	return clientType == ClientTypeWeb
}
