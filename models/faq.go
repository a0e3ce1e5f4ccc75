package models

// FAQ is one question/answer pair. Like stats, the collection is rewritten
// wholesale on save, so ids do not survive edits.
type FAQ struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Question string `json:"question" gorm:"type:text;not null"`
	Answer   string `json:"answer" gorm:"type:text;not null"`
}

func (FAQ) TableName() string {
	return string(CollectionFAQ)
}
