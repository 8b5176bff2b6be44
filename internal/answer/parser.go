package answer

import (
	"regexp"
	"strings"
)

const codeMarker = "Code:"

const resourcesMarker = "Resources:"

var (
	separatorRe    = regexp.MustCompile(`---\s*`)
	fencedBlockRe  = regexp.MustCompile("(?s)```[^\n]*\n?(.*?)```")
	resourceLinkRe = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// Parse extracts the three-part envelope from a raw model reply. The reply is
// untrusted free-form text, so parsing is total: a non-conforming input
// degrades to partial or empty fields and never fails.
func Parse(raw string) Envelope {
	env := Envelope{Resources: []Resource{}}

	idx := strings.Index(raw, codeMarker)
	if idx < 0 {
		env.Explanation = cleanExplanation(raw)
		return env
	}

	env.Explanation = cleanExplanation(raw[:idx])

	rest := raw[idx+len(codeMarker):]
	if m := fencedBlockRe.FindStringSubmatchIndex(rest); m != nil {
		env.Code = strings.Trim(rest[m[2]:m[3]], "\r\n")
		rest = rest[m[1]:]
	}

	if ri := strings.Index(rest, resourcesMarker); ri >= 0 {
		env.Resources = parseResources(rest[ri+len(resourcesMarker):])
	}

	return env
}

// cleanExplanation removes the template's separator tokens and surrounding
// whitespace from the explanation section.
func cleanExplanation(text string) string {
	return strings.TrimSpace(separatorRe.ReplaceAllString(text, ""))
}

// parseResources collects list items matching the [title](url) link pattern.
// Lines that are not list items or carry no link are silently dropped.
func parseResources(section string) []Resource {
	resources := []Resource{}
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		m := resourceLinkRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		resources = append(resources, Resource{Title: m[1], URL: m[2]})
	}
	return resources
}

// SplitLines breaks an explanation into its non-blank lines in source order,
// the unit the paced delivery channel emits one event per.
func SplitLines(explanation string) []string {
	lines := make([]string, 0, 8)
	for _, line := range strings.Split(explanation, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
