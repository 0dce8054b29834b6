// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer holds small generic helpers for optional values.

Optional fields in this codebase are pointers: nil means "absent" in a JSON
patch body and NULL in a nullable column.
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Assign copies *patch into *target when patch is set and reports whether it did.
func Assign[T any](target *T, patch *T) bool {
	if patch == nil {
		return false
	}
	*target = *patch
	return true
}
