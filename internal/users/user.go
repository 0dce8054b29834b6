// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package users implements the user directory: registration, public profiles,
self-service profile changes and avatar uploads.

# Ownership

A user profile is owned by the user it describes. Updates, deletes and
avatar uploads require the authenticated principal to be that user; a
foreign attempt is answered with ACCESS_DENIED rather than NotFound.
*/
package users

import "time"

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary is the public projection returned by register, update and delete.
type Summary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summarize projects a user onto its public summary.
func (user *User) Summarize() *Summary {
	return &Summary{ID: user.ID, Name: user.Name, Email: user.Email}
}

// TaskSummary is the task shape embedded in a profile.
type TaskSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Profile is the public view of a user together with their tasks.
type Profile struct {
	ID     int64         `json:"id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Avatar *string       `json:"avatar"`
	Tasks  []TaskSummary `json:"tasks"`
}

// AvatarResult is returned after a successful avatar upload.
type AvatarResult struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Field limits.
const (
	MaxNameLength     = 255
	MinPasswordLength = 6
)
