package models

// PopupSettings drives the welcome popup shown on first visit. Singleton
// pinned to id 1; the popup only renders when IsActive is set.
type PopupSettings struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"type:text"`
	Content  string `json:"content" gorm:"type:text"`
	Image    string `json:"image" gorm:"type:text"`
	IsActive bool   `json:"is_active" gorm:"not null;default:false"`
}

func (PopupSettings) TableName() string {
	return string(CollectionPopupSettings)
}
