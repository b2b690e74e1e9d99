package handlers

import (
	"html/template"
	"regexp"
	"strings"
)

// markupPattern is the compatibility heuristic for deciding whether stored
// content is already markup: any angle-bracket tag counts. Crude, but it
// matches what existing stored content was written against.
var markupPattern = regexp.MustCompile(`(?s)<\w+.*?>`)

func hasMarkup(s string) bool {
	return markupPattern.MatchString(s)
}

// contentHTML renders stored content for the browser: markup passes
// through as-is, plain text gets escaped with newlines turned into line
// breaks. Offer content and terms content go through this independently.
func contentHTML(s string) template.HTML {
	if hasMarkup(s) {
		return template.HTML(s)
	}
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
