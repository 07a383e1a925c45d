// Package models holds the lending records persisted by the store
// backends. Field names in json tags double as the document field
// names used for partial updates.
package models

import "strings"

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func joinList(set []string) string { return strings.Join(set, ", ") }
