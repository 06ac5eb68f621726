package metadata

import "strings"

// tagMarker is the keyword the generation prompt asks the model to
// prefix its tag list with. Matched case-insensitively.
const tagMarker = "tags:"

// Parse extracts (description, tags) from a free-form model response
// with a defined fallback chain:
//
//  1. marker split — everything after a "Tags:" line is the tag list;
//  2. last-line heuristic — a trailing comma-separated line is tags;
//  3. empty tags with the whole text as description.
//
// Metadata is non-critical, so Parse never fails: the weakest fallback
// always yields a usable result.
func Parse(raw string) (description string, tags []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if desc, tagText, ok := splitOnMarker(raw); ok {
		return desc, splitTags(tagText)
	}

	if desc, tagLine, ok := lastLineTags(raw); ok {
		return desc, splitTags(tagLine)
	}

	return raw, nil
}

// splitOnMarker finds the first line starting with the tag marker and
// splits the text around it.
func splitOnMarker(raw string) (description, tagText string, ok bool) {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < len(tagMarker) {
			continue
		}
		if !strings.EqualFold(trimmed[:len(tagMarker)], tagMarker) {
			continue
		}
		rest := strings.TrimSpace(trimmed[len(tagMarker):])
		// Tags may continue on the following lines.
		if more := strings.Join(lines[i+1:], ","); strings.TrimSpace(more) != "" {
			rest = strings.TrimSpace(rest + "," + more)
		}
		return strings.TrimSpace(strings.Join(lines[:i], "\n")), rest, true
	}
	return "", "", false
}

// lastLineTags treats a trailing comma-separated line as a tag list.
// A single comma-free line is prose, not tags.
func lastLineTags(raw string) (description, tagLine string, ok bool) {
	lines := strings.Split(raw, "\n")
	if len(lines) < 2 {
		return "", "", false
	}
	last := strings.TrimSpace(lines[len(lines)-1])
	if !strings.Contains(last, ",") {
		return "", "", false
	}
	return strings.TrimSpace(strings.Join(lines[:len(lines)-1], "\n")), last, true
}

func splitTags(tagText string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(tagText, ",") {
		tag := strings.Trim(strings.TrimSpace(part), "#\"")
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}
	return tags
}
