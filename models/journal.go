package models

// Journal repräsentiert eine Zeitschrift oder einen Tagungsband.
type Journal struct {
	ID        uint   `json:"journalId" gorm:"primaryKey;column:journal_id"`
	Name      string `json:"name" gorm:"not null"`
	Rating    string `json:"rating"` // z.B. "ВАК", "Scopus"
	Publisher string `json:"publisher"`
	IssnIsbn  string `json:"issnIsbn"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Journal) TableName() string {
	return "journals"
}
