package command

import "strings"

// TemplateVars are the substitutions available to string-valued responses.
type TemplateVars struct {
	Author  string // caller mention
	Prefix  string // resolved command prefix
	Command string // reconstructed symbolic command line
}

// Substitute expands the placeholders {author}, {prefix} and {command} in
// template. An empty template yields fallback unchanged.
func Substitute(template string, vars TemplateVars, fallback string) string {
	if template == "" {
		return fallback
	}
	return strings.NewReplacer(
		"{author}", vars.Author,
		"{prefix}", vars.Prefix,
		"{command}", vars.Command,
	).Replace(template)
}
