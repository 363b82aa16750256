package jira

import (
	"encoding/json"
	"strings"

	"github.com/btvapps/timelogr/internal/timelog"
)

// adfNode is one node of an Atlassian Document Format tree, trimmed to
// what plain-text extraction needs: a kind discriminator, an optional
// text leaf value, and optional nested content.
type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

// ExtractCommentText flattens a worklog comment to plain text. Comments
// arrive either as a bare string or as an ADF document; the document is
// walked depth-first, concatenating text leaves and inserting a single
// space at every explicit hardBreak node. Anything that yields no text
// becomes the NoDescription sentinel.
func ExtractCommentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return timelog.NoDescription
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		if plain == "" {
			return timelog.NoDescription
		}
		return plain
	}

	var doc adfNode
	if err := json.Unmarshal(raw, &doc); err != nil {
		return timelog.NoDescription
	}

	var sb strings.Builder
	walkADF(doc.Content, &sb)
	if sb.Len() == 0 {
		return timelog.NoDescription
	}
	return sb.String()
}

func walkADF(nodes []adfNode, sb *strings.Builder) {
	for _, node := range nodes {
		if node.Text != "" {
			sb.WriteString(node.Text)
		}
		if node.Type == "hardBreak" {
			sb.WriteString(" ")
		}
		if len(node.Content) > 0 {
			walkADF(node.Content, sb)
		}
	}
}
