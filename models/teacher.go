package models

// Teacher repräsentiert eine lehrende Person, die als Autor von Publikationen auftreten kann.
type Teacher struct {
	ID       uint   `json:"teacherId" gorm:"primaryKey;column:teacher_id"`
	FullName string `json:"fullName" gorm:"not null"`
	Position string `json:"position"`
	Degree   string `json:"degree"`

	DepartmentID uint        `json:"departmentId" gorm:"not null;index"`
	Department   *Department `json:"-" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Teacher) TableName() string {
	return "teachers"
}
