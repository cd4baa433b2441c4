package git

import (
	"strings"
)

// CommitType constants for semantic commits.
const (
	CommitTypeFeat     = "feat"
	CommitTypeFix      = "fix"
	CommitTypeDocs     = "docs"
	CommitTypeRefactor = "refactor"
	CommitTypeChore    = "chore"
)

const footer = "Recorded-by: jotter"

// FormatCommitMessage builds a Conventional Commit message:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Recorded-by: jotter
func FormatCommitMessage(ctype, scope, subject, body string) string {
	var sb strings.Builder

	if ctype == "" {
		ctype = CommitTypeChore
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	if body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(body))
	}

	sb.WriteString("\n\n")
	sb.WriteString(footer)

	return sb.String()
}

// AppendFooter appends the jotter footer to a free-form message if missing.
func AppendFooter(msg string) string {
	if strings.Contains(msg, footer) {
		return msg
	}

	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	if !strings.HasSuffix(msg, "\n\n") {
		msg += "\n"
	}

	return msg + footer
}

// ReasonMessage turns a store change reason such as "create note 42" into a
// commit message. Reasons that already look like conventional commits only
// get the footer.
func ReasonMessage(reason string) string {
	if reason == "" {
		return FormatCommitMessage(CommitTypeDocs, "notes", "update notes", "")
	}
	if head, _, ok := strings.Cut(reason, ":"); ok && !strings.Contains(head, " ") {
		return AppendFooter(reason)
	}
	return FormatCommitMessage(CommitTypeDocs, "notes", reason, "")
}
