package models

// Department repräsentiert einen Lehrstuhl, dem Lehrende zugeordnet sind.
type Department struct {
	ID      uint   `json:"departmentId" gorm:"primaryKey;column:department_id"`
	Name    string `json:"name" gorm:"not null"`
	Profile string `json:"profile" gorm:"type:text"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Department) TableName() string {
	return "departments"
}
