package models

// PublicationDTO ist die Form, in der Publikationen an Clients ausgeliefert werden.
// AuthorTeacherIDs und AuthorNames sind positionsgleich.
type PublicationDTO struct {
	PublicationID    uint     `json:"publicationId"`
	Title            string   `json:"title"`
	Type             string   `json:"type"`
	Year             int      `json:"year"`
	DoiLink          string   `json:"doiLink"`
	JournalID        uint     `json:"journalId"`
	JournalName      string   `json:"journalName"`
	AuthorTeacherIDs []uint   `json:"authorTeacherIds"`
	AuthorNames      []string `json:"authorNames"`
	Version          uint     `json:"version"`
}

// PublicationInput wird vom Client beim Anlegen und beim Aktualisieren gesendet.
type PublicationInput struct {
	Title            string `json:"title" binding:"required"`
	Type             string `json:"type" binding:"required"`
	Year             int    `json:"year"`
	DoiLink          string `json:"doiLink"`
	JournalID        uint   `json:"journalId" binding:"required"`
	AuthorTeacherIDs []uint `json:"authorTeacherIds"`
}

// PaginatedResult enthält eine Seite und die Gesamtzahl aller Einträge.
type PaginatedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}

// TeacherOption ist die reduzierte Form für Auswahllisten.
type TeacherOption struct {
	TeacherID uint   `json:"teacherId"`
	FullName  string `json:"fullName"`
}

// JournalOption ist die reduzierte Form für Auswahllisten.
type JournalOption struct {
	JournalID uint   `json:"journalId"`
	Name      string `json:"name"`
}
