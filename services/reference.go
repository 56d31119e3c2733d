package services

import (
	"fmt"
	"strings"

	"publication-portal/models"
)

// FormatReference rendert eine Publikation als kompakte bibliografische Zeile,
// z.B. "Иванов И.И., Петров П.П. Заголовок // Вестник науки. 2024. DOI: 10.1/x".
func FormatReference(p models.PublicationDTO) string {
	var b strings.Builder

	if len(p.AuthorNames) > 0 {
		b.WriteString(strings.Join(p.AuthorNames, ", "))
		b.WriteString(" ")
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Без названия"
	}
	b.WriteString(strings.TrimSuffix(title, "."))

	if p.JournalName != "" {
		b.WriteString(" // ")
		b.WriteString(p.JournalName)
	}
	b.WriteString(".")

	if p.Year > 0 {
		fmt.Fprintf(&b, " %d.", p.Year)
	}
	if doi := strings.TrimSpace(p.DoiLink); doi != "" {
		b.WriteString(" DOI: ")
		b.WriteString(doi)
	}
	return b.String()
}
