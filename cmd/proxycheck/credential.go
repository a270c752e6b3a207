package main

import (
	"fmt"
	"os"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	credential "github.com/mutablelogic/proxycheck/pkg/credential"
	schema "github.com/mutablelogic/proxycheck/pkg/schema"
	smoke "github.com/mutablelogic/proxycheck/pkg/smoke"
	uitable "github.com/mutablelogic/proxycheck/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type EndpointCommand struct{}

type AccountsCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *EndpointCommand) Run(ctx *Globals) (err error) {
	// OTEL
	_, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "EndpointCommand")
	defer func() { endSpan(err) }()

	path, err := ctx.CredentialPath()
	if err != nil {
		return err
	}
	fmt.Println("Credentials:", path)
	cred := smoke.LoadCredential(os.Stdout, path)
	smoke.PrintEndpoint(os.Stdout, cred)
	return nil
}

func (cmd *AccountsCommand) Run(ctx *Globals) (err error) {
	// OTEL
	_, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "AccountsCommand")
	defer func() { endSpan(err) }()

	cfg, err := ctx.Settings()
	if err != nil {
		return err
	}
	dir, err := ctx.credentialDir(cfg)
	if err != nil {
		return err
	}
	names, err := credential.Accounts(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No credentials found in", dir)
		return nil
	}

	// Read each account
	current := cfg.Credentials.Account
	if current == "" {
		current = credential.DefaultAccount
	}
	accounts := schema.AccountTable{CurrentAccount: current, Now: time.Now()}
	for _, name := range names {
		accounts.Accounts = append(accounts.Accounts, account(dir, name))
	}

	fmt.Println(uitable.Render(accounts))
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func account(dir, name string) schema.Account {
	result := schema.Account{Name: name}
	cred, err := credential.Load(credential.Path(dir, name))
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Endpoint = cred.Endpoint()
	result.HasToken = cred.Valid() == nil
	result.Expiry = cred.Token().Expiry
	return result
}
