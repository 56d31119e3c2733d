package models

// PublicationAuthor verknüpft eine Publikation mit einem ihrer Autoren.
// Das Paar (PublicationID, TeacherID) ist der Primärschlüssel.
type PublicationAuthor struct {
	PublicationID uint `json:"publicationId" gorm:"primaryKey;autoIncrement:false"`
	TeacherID     uint `json:"teacherId" gorm:"primaryKey;autoIncrement:false;index"`

	Publication *Publication `json:"-" gorm:"foreignKey:PublicationID;references:ID;constraint:OnDelete:CASCADE"`
	Teacher     *Teacher     `json:"-" gorm:"foreignKey:TeacherID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (PublicationAuthor) TableName() string {
	return "publication_authors"
}
