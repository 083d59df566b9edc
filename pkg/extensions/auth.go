// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package extensions defines the pluggable seams of MoneyGuy.
//
// The server depends only on the interfaces here. The open source
// build wires the local JWT provider; hosted deployments can swap in
// providers backed by external identity systems without touching the
// server packages.
package extensions

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned when authentication fails. Provider
// implementations should wrap this error with additional context:
//
//	if !validToken {
//	    return nil, fmt.Errorf("token expired: %w", extensions.ErrUnauthorized)
//	}
var ErrUnauthorized = errors.New("unauthorized")

// AuthInfo contains identity information returned after successful
// authentication.
//
// UserID is always populated and must never be empty. The remaining
// fields are optional and depend on what the provider knows about the
// user. Metadata is the extension point for provider-specific claims
// (session IDs, MFA state) without modifying the core type.
type AuthInfo struct {
	// UserID is the unique identifier for the authenticated user.
	UserID string

	// Email is the user's login email, when the provider supplies it.
	Email string

	// Name is the user's display name. The assistant uses it to
	// address the user, so providers should populate it when known.
	Name string

	// Roles contains role memberships for authorization decisions.
	Roles []string

	// Metadata holds additional claims from the identity provider.
	Metadata map[string]any
}

// HasRole checks if the user holds a specific role.
func (a *AuthInfo) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AuthProvider validates bearer tokens and returns user identity.
//
// Implementations must be safe for concurrent use by multiple
// goroutines. The token format is implementation-specific; the
// default provider issues and validates HS256 JWTs.
type AuthProvider interface {
	// Validate checks the token and returns the user's identity.
	//
	// Returns ErrUnauthorized (possibly wrapped) when the token is
	// missing, malformed, expired, or signed with the wrong key.
	// Other errors indicate provider failures, not bad credentials.
	Validate(ctx context.Context, token string) (*AuthInfo, error)
}

// AuthzRequest describes an authorization check as a
// (subject, action, resource) triple.
type AuthzRequest struct {
	// User is the authenticated subject, from AuthProvider.Validate.
	User *AuthInfo

	// Action is the operation being attempted:
	// "create", "read", "update", "delete".
	Action string

	// ResourceType is the category being accessed:
	// "transaction", "budget", "goal", "report".
	ResourceType string

	// ResourceID is the specific instance; empty means the check is
	// for the resource type in general.
	ResourceID string
}

// AuthzProvider checks whether a user may perform an action.
//
// The default NopAuthzProvider allows everything, which is correct
// for the single-tenant deployment where row ownership is enforced
// by the store layer. Hosted deployments can plug in RBAC here.
type AuthzProvider interface {
	// Authorize returns nil when the action is permitted and
	// ErrUnauthorized (possibly wrapped) when denied.
	Authorize(ctx context.Context, req AuthzRequest) error
}

// NopAuthProvider accepts any token and returns a fixed local user.
// Intended for tests and single-user local runs where standing up
// the JWT provider is not worth it.
type NopAuthProvider struct{}

// Validate ignores the token and returns the local user.
func (p *NopAuthProvider) Validate(_ context.Context, _ string) (*AuthInfo, error) {
	return &AuthInfo{
		UserID: "local-user",
		Name:   "Local User",
		Roles:  []string{"admin"},
	}, nil
}

// NopAuthzProvider allows all actions.
type NopAuthzProvider struct{}

// Authorize always returns nil.
func (p *NopAuthzProvider) Authorize(_ context.Context, _ AuthzRequest) error {
	return nil
}

var (
	_ AuthProvider  = (*NopAuthProvider)(nil)
	_ AuthzProvider = (*NopAuthzProvider)(nil)
)
