// Package utils provides identifier and text helpers shared by the entity
// layer, the services and the upload store.
package utils

import (
	"github.com/google/uuid"
)

// GenerateUUID generates a new UUID v4 string.
// UUID v4 uses random data and is the most common UUID type for general use.
func GenerateUUID() string {
	return uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID.
// Returns true if the string can be parsed as any valid UUID format
// (with or without hyphens).
func IsValidUUID(uuidStr string) bool {
	_, err := uuid.Parse(uuidStr)
	return err == nil
}

// EnsureID assigns a fresh UUID when *id is empty.
func EnsureID(id *string) {
	if *id == "" {
		*id = GenerateUUID()
	}
}

// UniqueIDs returns ids with duplicates and blanks removed, preserving order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
