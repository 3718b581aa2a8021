package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error (go.trai.ch/zerr v0.3.0+).
type messager interface {
	Message() string
}

// metadataer matches zerr.Error's per-layer metadata accessor.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one layer of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the zerr cause chain. The first error without a
// Message method ends the walk with its full Error() text.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		pending ErrorEntry
	)

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entry := ErrorEntry{Message: current.Error()}
			mergeMetadata(&entry, pending.Metadata)
			entries = append(entries, entry)
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}

		// Layers created only to carry metadata have no message of their own.
		switch {
		case entry.Message == "" && len(entries) > 0:
			mergeMetadata(&entries[len(entries)-1], entry.Metadata)
		case entry.Message == "":
			mergeMetadata(&pending, entry.Metadata)
		default:
			mergeMetadata(&entry, pending.Metadata)
			pending = ErrorEntry{}
			entries = append(entries, entry)
		}

		current = errors.Unwrap(current)
	}

	return entries
}

func mergeMetadata(entry *ErrorEntry, md map[string]any) {
	if len(md) == 0 {
		return
	}
	if entry.Metadata == nil {
		entry.Metadata = make(map[string]any, len(md))
	}
	for k, v := range md {
		if _, exists := entry.Metadata[k]; !exists {
			entry.Metadata[k] = v
		}
	}
}

// formatErrorEntries renders the chain as "Error: ..." followed by the causes,
// each with its metadata sorted by key.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		first, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			first, indent = "    → ", "      "
		}

		lines = append(lines, first+msgLines[0])
		for _, l := range msgLines[1:] {
			lines = append(lines, indent+l)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
