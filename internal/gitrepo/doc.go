// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for detecting working trees and staging files,
// consumed by formatting services that need structured Git operations.
package gitrepo
