package schema

import (
	"time"

	// Packages
	uitable "github.com/mutablelogic/proxycheck/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Account is a credential file found in the credential directory
type Account struct {
	Name     string    `json:"name"`
	Endpoint string    `json:"endpoint,omitempty"`
	HasToken bool      `json:"has_token"`
	Expiry   time.Time `json:"expiry,omitzero"`
	Error    string    `json:"error,omitempty"`
}

// AccountTable implements table.TableData for a list of accounts.
type AccountTable struct {
	Accounts       []Account
	CurrentAccount string
	Now            time.Time
}

///////////////////////////////////////////////////////////////////////////////
// ACCOUNT TABLE (LIST)

func (t AccountTable) Header() []string {
	return []string{"ACCOUNT", "TOKEN", "ENDPOINT", "EXPIRES", "ERROR"}
}

func (t AccountTable) Len() int {
	return len(t.Accounts)
}

func (t AccountTable) Row(i int) []any {
	a := t.Accounts[i]
	var expires any = a.Expiry
	if !a.Expiry.IsZero() && !t.Now.IsZero() && !a.Expiry.After(t.Now) {
		expires = "expired"
	}
	row := []any{a.Name, uitable.Status(a.HasToken), a.Endpoint, expires, uitable.Truncate(a.Error, 60)}
	if t.CurrentAccount != "" && a.Name == t.CurrentAccount {
		row[0] = uitable.Bold{Value: a.Name}
	}
	return row
}
