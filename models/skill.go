package models

// Skill is a labeled capability. Order only drives display sequence and need
// not be unique or contiguous.
type Skill struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"column:name;type:text;not null"`
	Order int    `json:"order" gorm:"column:order;not null;index"`
}

func (Skill) TableName() string {
	return "skills"
}

type InsertSkill struct {
	Name  string `json:"name" validate:"required"`
	Order int    `json:"order"`
}

func (s InsertSkill) Validate() error {
	vErr := &ValidationError{}
	validateStruct(s, vErr)
	return vErr.orNil()
}

func (s InsertSkill) Record() Skill {
	return Skill{Name: s.Name, Order: s.Order}
}
