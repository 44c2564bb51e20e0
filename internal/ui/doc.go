// Package ui holds terminal styling for CLI output, built on [lipgloss].
package ui
