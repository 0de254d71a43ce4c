package services

import (
	"fmt"
	"strings"

	"github.com/sageleaf/curricula-backend/internal/types"
)

// RenderSessionMarkdown turns a session into the downloadable Markdown
// document. Every reading, case study, discussion prompt and the full essay
// must survive the round trip verbatim.
func RenderSessionMarkdown(content types.SessionContent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Session %d: %s\n\n", content.SessionNumber, content.Title)

	if strings.TrimSpace(content.Overview) != "" {
		b.WriteString("## Overview\n\n")
		b.WriteString(content.Overview)
		b.WriteString("\n\n")
	}

	if len(content.Objectives) > 0 {
		b.WriteString("## Learning Objectives\n\n")
		for _, obj := range content.Objectives {
			fmt.Fprintf(&b, "- %s\n", obj)
		}
		b.WriteString("\n")
	}

	if strings.TrimSpace(content.Essay) != "" {
		b.WriteString("## Lesson\n\n")
		b.WriteString(content.Essay)
		b.WriteString("\n\n")
	}

	if len(content.Readings) > 0 {
		b.WriteString("## Readings\n\n")
		for _, r := range content.Readings {
			line := "- **" + r.Title + "**"
			if r.Author != "" {
				line += " by " + r.Author
			}
			if r.Source != "" {
				line += " (" + r.Source + ")"
			}
			b.WriteString(line + "\n")
			if r.Why != "" {
				fmt.Fprintf(&b, "  %s\n", r.Why)
			}
		}
		b.WriteString("\n")
	}

	if len(content.CaseStudies) > 0 {
		b.WriteString("## Case Studies\n\n")
		for _, cs := range content.CaseStudies {
			fmt.Fprintf(&b, "### %s\n\n", cs.Title)
			if cs.Summary != "" {
				b.WriteString(cs.Summary + "\n\n")
			}
			if cs.Takeaway != "" {
				fmt.Fprintf(&b, "**Takeaway:** %s\n\n", cs.Takeaway)
			}
		}
	}

	if len(content.Videos) > 0 {
		b.WriteString("## Videos\n\n")
		for _, v := range content.Videos {
			line := "- " + v.Title
			if v.Creator != "" {
				line += " — " + v.Creator
			}
			if v.SearchBy != "" {
				line += " (search: " + v.SearchBy + ")"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if len(content.DiscussionPrompts) > 0 {
		b.WriteString("## Discussion Prompts\n\n")
		for i, p := range content.DiscussionPrompts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// MarkdownFilename builds a safe attachment filename from the session title.
func MarkdownFilename(content types.SessionContent) string {
	slug := strings.ToLower(strings.TrimSpace(content.Title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "session"
	}
	return fmt.Sprintf("session-%d-%s.md", content.SessionNumber, slug)
}
