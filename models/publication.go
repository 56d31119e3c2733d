package models

// Publication repräsentiert eine wissenschaftliche Veröffentlichung.
type Publication struct {
	ID      uint   `json:"publicationId" gorm:"primaryKey;column:publication_id"`
	Title   string `json:"title" gorm:"not null"`
	Type    string `json:"type"` // article, abstract, monograph ...
	Year    int    `json:"year" gorm:"index"`
	DoiLink string `json:"doiLink"`

	JournalID uint     `json:"journalId" gorm:"not null;index"`
	Journal   *Journal `json:"-" gorm:"foreignKey:JournalID;references:ID;constraint:OnDelete:CASCADE"`

	// Version wird bei jedem Update erhöht (optimistische Sperre).
	Version uint `json:"version" gorm:"not null"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Publication) TableName() string {
	return "publications"
}
