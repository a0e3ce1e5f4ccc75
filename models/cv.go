package models

// CV points at the downloadable CV file in blob storage. Singleton pinned to
// id 1; the table keeps the original "cv_url" name.
type CV struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	FileURL string `json:"file_url" gorm:"type:text"`
}

func (CV) TableName() string {
	return string(CollectionCV)
}
