package models

// Content is one named section of marketing copy.
type Content struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Section string `json:"section" gorm:"column:section;type:text;not null;uniqueIndex"`
	Text    string `json:"text" gorm:"column:text;type:text;not null"`
}

func (Content) TableName() string {
	return "content"
}

// InsertContent is a Content without its store-assigned identity.
type InsertContent struct {
	Section string `json:"section" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

func (c InsertContent) Validate() error {
	vErr := &ValidationError{}
	validateStruct(c, vErr)
	return vErr.orNil()
}

func (c InsertContent) Record() Content {
	return Content{Section: c.Section, Text: c.Text}
}
