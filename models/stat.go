package models

// Stat is one entry of the statistics strip (e.g. label "Projects Done",
// value "50+"). Ids are store-assigned and renumbered on every save of the
// collection.
type Stat struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Label string `json:"label" gorm:"type:text;not null"`
	Value string `json:"value" gorm:"type:text;not null"`
}

func (Stat) TableName() string {
	return string(CollectionStats)
}
