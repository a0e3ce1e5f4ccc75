package models

// Profile is the site owner's hero/bio record. Singleton pinned to id 1.
type Profile struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:text"`
	Title       string `json:"title" gorm:"type:text"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"type:text"`
}

func (Profile) TableName() string {
	return string(CollectionProfile)
}
