package smoke

import (
	"errors"
	"fmt"
	"io"
	"time"

	// Packages
	proxycheck "github.com/mutablelogic/proxycheck"
	credential "github.com/mutablelogic/proxycheck/pkg/credential"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LoadCredential reads the credential record at path, printing a message to
// w and returning nil when it cannot be read. A nil credential leaves the
// authenticated checks to fail without sending a request.
func LoadCredential(w io.Writer, path string) *credential.Credential {
	cred, err := credential.Load(path)
	switch {
	case errors.Is(err, proxycheck.ErrNotFound):
		fmt.Fprintln(w, "No credentials found. Please authenticate with qwen-code first.")
		return nil
	case err != nil:
		fmt.Fprintln(w, "Error loading credentials:", err)
		return nil
	}
	return cred
}

// PrintEndpoint prints the upstream endpoint the credential resolves to and
// when its token expires
func PrintEndpoint(w io.Writer, cred *credential.Credential) {
	fmt.Fprintln(w, "Using API endpoint:", cred.Endpoint())
	if cred == nil {
		return
	}
	if err := cred.Valid(); err != nil {
		fmt.Fprintln(w, "No access token found in credentials.")
		return
	}
	fmt.Fprintln(w, "Token expiry:", Expiry(cred, time.Now()))
}

// Expiry describes when the credential token expires relative to now
func Expiry(cred *credential.Credential, now time.Time) string {
	token := cred.Token()
	switch {
	case token.Expiry.IsZero():
		return "unknown"
	case !token.Expiry.After(now):
		return fmt.Sprintf("expired %s ago", now.Sub(token.Expiry).Round(time.Second))
	default:
		return fmt.Sprintf("in %s (%s)", token.Expiry.Sub(now).Round(time.Second), token.Expiry.Local().Format(time.RFC3339))
	}
}
