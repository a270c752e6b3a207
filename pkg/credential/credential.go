/*
credential reads the OAuth credential records written by qwen-code under
~/.qwen, and resolves the upstream API endpoint they point at.
*/
package credential

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Packages
	proxycheck "github.com/mutablelogic/proxycheck"
	schema "github.com/mutablelogic/proxycheck/pkg/schema"
	oauth2 "golang.org/x/oauth2"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Credential is a single qwen-code credential record
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ResourceURL  string `json:"resource_url,omitempty"`

	// Expiry in milliseconds since the Unix epoch
	ExpiryDate int64 `json:"expiry_date,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Dir            = ".qwen"
	DefaultFile    = "oauth_creds.json"
	AccountPrefix  = "oauth_creds_"
	AccountSuffix  = ".json"
	DefaultAccount = "default"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Load reads a credential record from path. A missing file returns
// ErrNotFound and invalid JSON returns ErrBadParameter.
func Load(path string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, proxycheck.ErrNotFound.Withf("no credentials at %q", path)
	} else if err != nil {
		return nil, err
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, proxycheck.ErrBadParameter.Withf("%s: %v", filepath.Base(path), err)
	}
	return &cred, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DefaultDir returns ~/.qwen for the current user
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, Dir), nil
}

// Path returns the credential file for an account within dir. The empty
// account (or "default") selects the file written by qwen-code itself.
func Path(dir, account string) string {
	if account == "" || account == DefaultAccount {
		return filepath.Join(dir, DefaultFile)
	}
	return filepath.Join(dir, AccountPrefix+account+AccountSuffix)
}

// Accounts returns the names of the credential files present in dir, with
// the qwen-code file reported as "default". A missing directory is not an
// error.
func Accounts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case name == DefaultFile:
			result = append(result, DefaultAccount)
		case strings.HasPrefix(name, AccountPrefix) && strings.HasSuffix(name, AccountSuffix):
			if account := strings.TrimSuffix(strings.TrimPrefix(name, AccountPrefix), AccountSuffix); account != "" {
				result = append(result, account)
			}
		}
	}
	return result, nil
}

// Valid returns an error when the record cannot authenticate a request
func (c *Credential) Valid() error {
	if c == nil || strings.TrimSpace(c.AccessToken) == "" {
		return proxycheck.ErrUnauthorized.With("no access token found in credentials")
	}
	return nil
}

// Token returns the record as an oauth2 token. Expiry is zero when the record
// carries no expiry_date.
func (c *Credential) Token() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
	}
	if c.ExpiryDate > 0 {
		token.Expiry = time.UnixMilli(c.ExpiryDate)
	}
	return token
}

// Endpoint returns the upstream API endpoint for this record
func (c *Credential) Endpoint() string {
	if c == nil {
		return schema.DefaultUpstreamURL
	}
	return ResolveEndpoint(c.ResourceURL)
}

// ResolveEndpoint normalises a resource_url into an API base URL: a scheme is
// added when missing and the path is suffixed with /v1. An empty value
// resolves to the default upstream endpoint.
func ResolveEndpoint(resourceURL string) string {
	endpoint := strings.TrimSpace(resourceURL)
	if endpoint == "" {
		return schema.DefaultUpstreamURL
	}
	if !hasScheme(endpoint) {
		endpoint = "https://" + endpoint
	}
	if !strings.HasSuffix(endpoint, "/v1") {
		if strings.HasSuffix(endpoint, "/") {
			endpoint += "v1"
		} else {
			endpoint += "/v1"
		}
	}
	return endpoint
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// hasScheme reports whether endpoint parses with a scheme and host. Values
// such as "portal.qwen.ai" or "portal.qwen.ai:443" do not.
func hasScheme(endpoint string) bool {
	u, err := url.Parse(endpoint)
	return err == nil && u.Scheme != "" && u.Host != ""
}
