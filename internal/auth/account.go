// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth exchanges email and password for a signed bearer token.

# Flow

	credentials -> CredentialRepository -> PasswordHasher.Compare -> TokenService.Issue

Unknown emails, inactive accounts and wrong passwords all produce the same
Unauthorized error so a caller cannot probe which emails are registered.
An optional attempt limiter caps failed logins per email.
*/
package auth

// Account is the credential view of a user; it never leaves the package as JSON.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Avatar       *string
}

// Session is the login response: the account's public fields plus its token.
type Session struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
	Token  string  `json:"token"`
}
