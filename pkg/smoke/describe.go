package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Describe returns a one-line diagnostic for an error from a check. Status
// errors read "HTTP <code> <text>" and deadlines read "request timed out",
// keeping any route prefix such as "GET /v1/models: ".
func Describe(err error) string {
	if err == nil {
		return ""
	}
	prefix := routePrefix(err)

	// Timeout
	if errors.Is(err, context.DeadlineExceeded) {
		return prefix + "request timed out"
	}

	// Non-2xx response
	var httpErr httpresponse.Err
	if errors.As(err, &httpErr) {
		code := int(httpErr)
		text := http.StatusText(code)
		status := fmt.Sprintf("HTTP %d %s", code, text)
		msg := strings.TrimPrefix(err.Error(), prefix)
		if detail := strings.TrimLeft(strings.TrimPrefix(msg, text), ": "); detail != "" && detail != msg {
			return prefix + status + ": " + detail
		}
		return prefix + status
	}

	return err.Error()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// routePrefix returns "<METHOD> <path>: " when the error is annotated with
// the route which failed
func routePrefix(err error) string {
	msg := err.Error()
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		if !strings.HasPrefix(msg, method+" /") {
			continue
		}
		if i := strings.Index(msg, ": "); i > 0 {
			return msg[:i+2]
		}
	}
	return ""
}
