package database

import (
	"gorm.io/gorm"

	"github.com/tiaraw/portfolio-backend/blobstore"
	"github.com/tiaraw/portfolio-backend/models"
)

type Database struct {
	contentStore *ContentStore
}

// New initializes a new Database struct with the content store sharing a GORM
// database instance and a blob store.
func New(db *gorm.DB, blobs blobstore.Store) Database {
	return Database{
		contentStore: NewContentStore(db, blobs),
	}
}

func (d Database) ContentStore() *ContentStore {
	return d.contentStore
}

// Migrate creates or updates the seven content tables. The original store
// created tables implicitly on first write; here they exist from boot.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.Profile{},
		&models.Stat{},
		&models.FAQ{},
		&models.SocialLinks{},
		&models.CV{},
		&models.PopupSettings{},
	)
}
