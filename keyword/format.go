package keyword

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// FormatChecker reports whether a string value conforms to one named format.
type FormatChecker func(ctx *Context, value string) bool

func formatDateTime(_ *Context, value string) bool {
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}

func formatDate(_ *Context, value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func formatTime(_ *Context, value string) bool {
	if _, err := time.Parse("15:04:05Z07:00", value); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05.999999999Z07:00", value)
	return err == nil
}

func formatEmail(_ *Context, value string) bool {
	addr, err := mail.ParseAddress(value)
	// Reject the "Name <addr>" form, only a bare address is a valid email.
	return err == nil && addr.Address == value
}

var hostnameRe = regexp.MustCompile(
	`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

func formatHostname(_ *Context, value string) bool {
	return len(value) <= 253 && hostnameRe.MatchString(value)
}

func formatIPv4(_ *Context, value string) bool {
	ip := net.ParseIP(value)
	return ip != nil && strings.Count(value, ".") == 3 && ip.To4() != nil
}

func formatIPv6(_ *Context, value string) bool {
	ip := net.ParseIP(value)
	return ip != nil && strings.Contains(value, ":")
}

func formatRegex(ctx *Context, value string) bool {
	_, err := ctx.compileRegex(value)
	return err == nil
}

func formatURI(_ *Context, value string) bool {
	u, err := url.Parse(value)
	return err == nil && u.IsAbs()
}

func formatURIReference(_ *Context, value string) bool {
	_, err := url.Parse(value)
	return err == nil
}

var uriTemplateRe = regexp.MustCompile(`^(?:[^{}]|\{[^{}]+\})*$`)

func formatURITemplate(_ *Context, value string) bool {
	return uriTemplateRe.MatchString(value)
}

func formatJSONPointer(_ *Context, value string) bool {
	if value == "" {
		return true
	}
	if !strings.HasPrefix(value, "/") {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] != '~' {
			continue
		}
		if i+1 >= len(value) || (value[i+1] != '0' && value[i+1] != '1') {
			return false
		}
	}
	return true
}
