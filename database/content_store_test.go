package database

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tiaraw/portfolio-backend/blobstore"
	"github.com/tiaraw/portfolio-backend/models"
)

func newTestStore(t *testing.T) (*ContentStore, *blobstore.MemoryStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection: a pooled :memory: database is a different database per
	// connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	blobs := blobstore.NewMemoryStore()
	return NewContentStore(db, blobs), blobs
}

func TestSingletonWritesPinToIDOne(t *testing.T) {
	store, _ := newTestStore(t)

	// Whatever identity the payload carries, the stored row is id 1.
	err := store.Set(models.CollectionProfile, models.Profile{
		ID:    7,
		Name:  "Tiara",
		Title: "Content Creator",
	})
	require.NoError(t, err)

	profile := store.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, models.SingletonID, profile.ID)
	assert.Equal(t, "Tiara", profile.Name)

	// A second write overwrites in place; there is never a second row.
	require.NoError(t, store.Set(models.CollectionProfile, Record{"name": "Updated", "id": 42}))
	rows := store.Get(models.CollectionProfile)
	require.Len(t, rows, 1)
	assert.Equal(t, "Updated", store.Profile().Name)
}

func TestSingletonPinningAllCollections(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(models.CollectionSocialLinks, Record{"id": 9, "linkedin": "l"}))
	require.NoError(t, store.Set(models.CollectionCV, Record{"id": 9, "file_url": "u"}))
	require.NoError(t, store.Set(models.CollectionPopupSettings, Record{"id": 9, "title": "hi", "is_active": true}))

	assert.Equal(t, models.SingletonID, store.SocialLinks().ID)
	assert.Equal(t, models.SingletonID, store.CV().ID)
	assert.Equal(t, models.SingletonID, store.PopupSettings().ID)
	assert.True(t, store.PopupSettings().IsActive)
}

func TestReplaceAllKeepsOrderAndValues(t *testing.T) {
	store, _ := newTestStore(t)

	first := []models.Stat{
		{Label: "Projects", Value: "50+"},
		{Label: "Clients", Value: "12"},
		{Label: "Years", Value: "5"},
	}
	require.NoError(t, store.Set(models.CollectionStats, first))

	before := store.Stats()
	require.Len(t, before, 3)

	// Save the full set again with one value changed; ids may be renumbered
	// but length, order, and label/value pairs must match the payload.
	edited := make([]models.Stat, len(before))
	copy(edited, before)
	edited[1].Value = "20"
	require.NoError(t, store.Set(models.CollectionStats, edited))

	after := store.Stats()
	require.Len(t, after, len(edited))
	for i := range edited {
		assert.Equal(t, edited[i].Label, after[i].Label)
		assert.Equal(t, edited[i].Value, after[i].Value)
	}
	assert.Equal(t, "20", after[1].Value)
}

func TestReplaceAllRenumbersIdentities(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(models.CollectionFAQ, []models.FAQ{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}))
	before := store.FAQ()
	require.Len(t, before, 2)

	// Saving again reinserts everything; any external reference to the old
	// ids is invalidated.
	require.NoError(t, store.Set(models.CollectionFAQ, before))
	after := store.FAQ()
	require.Len(t, after, 2)
	assert.NotEqual(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[0].Question, after[0].Question)
}

func TestReplaceAllEmptyPayloadEmptiesCollection(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(models.CollectionStats, []models.Stat{{Label: "X", Value: "1"}}))
	require.Len(t, store.Stats(), 1)

	require.NoError(t, store.Set(models.CollectionStats, []models.Stat{}))
	assert.Empty(t, store.Stats())
	assert.Empty(t, store.Get(models.CollectionStats))
}

func TestReplaceAllStripsIncomingIdentityFields(t *testing.T) {
	store, _ := newTestStore(t)

	// Raw admin payloads carry ids and timestamps from the previous read;
	// both must be ignored on reinsert.
	payload := []Record{
		{"id": 900, "created_at": "2025-01-01T00:00:00Z", "label": "Reach", "value": "1M"},
	}
	require.NoError(t, store.Set(models.CollectionStats, payload))

	stats := store.Stats()
	require.Len(t, stats, 1)
	assert.NotEqual(t, int64(900), stats[0].ID)
	assert.Equal(t, "Reach", stats[0].Label)
}

func TestProjectUpsertIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	project := models.Project{
		ID:       3,
		Title:    "Launch",
		Category: models.CategorySocialMedia,
		Link:     "https://example.com",
	}
	require.NoError(t, store.Set(models.CollectionProjects, project))
	require.NoError(t, store.Set(models.CollectionProjects, project))

	projects := store.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, int64(3), projects[0].ID)
	assert.Equal(t, "Launch", projects[0].Title)
	assert.Equal(t, models.CategorySocialMedia, projects[0].Category)
}

func TestProjectUpsertWithIDUpdatesInPlace(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(models.CollectionProjects, models.Project{Title: "Old", Category: models.CategoryCreativeCampaign}))
	created := store.Projects()
	require.Len(t, created, 1)

	// An edit payload carrying the existing id must update that row, not
	// create a new one.
	edit := created[0]
	edit.Title = "New"
	require.NoError(t, store.Set(models.CollectionProjects, edit))

	projects := store.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, created[0].ID, projects[0].ID)
	assert.Equal(t, "New", projects[0].Title)
}

func TestProjectCreateWithoutID(t *testing.T) {
	store, _ := newTestStore(t)

	// Admin submits a new project: no id set, image uploaded beforehand.
	payload := Record{
		"title":    "Launch",
		"category": models.CategorySocialMedia,
		"image":    "memory://project-images/1-launch.png",
	}
	require.NoError(t, store.Set(models.CollectionProjects, payload))

	projects := store.Projects()
	require.Len(t, projects, 1)
	assert.NotZero(t, projects[0].ID)
	assert.Equal(t, "Launch", projects[0].Title)
	assert.Equal(t, "memory://project-images/1-launch.png", projects[0].ImageURL())
}

func TestProjectImageAcceptsStringAndArrayForms(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(models.CollectionProjects, Record{"title": "A", "category": models.CategorySocialMedia, "image": "http://a"}))
	require.NoError(t, store.Set(models.CollectionProjects, Record{"title": "B", "category": models.CategorySocialMedia, "image": []string{"http://a"}}))

	projects := store.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, projects[0].ImageURL(), projects[1].ImageURL())
	assert.Equal(t, "http://a", projects[0].ImageURL())
}

func TestRelatedProjects(t *testing.T) {
	store, _ := newTestStore(t)

	for _, p := range []models.Project{
		{Title: "A", Category: models.CategorySocialMedia},
		{Title: "B", Category: models.CategorySocialMedia},
		{Title: "C", Category: models.CategoryContentCreator},
		{Title: "D", Category: models.CategorySocialMedia},
		{Title: "E", Category: models.CategorySocialMedia},
	} {
		require.NoError(t, store.Set(models.CollectionProjects, p))
	}

	projects := store.Projects()
	require.Len(t, projects, 5)

	related := store.RelatedProjects(projects[0], 3)
	require.Len(t, related, 3)
	for _, r := range related {
		assert.Equal(t, models.CategorySocialMedia, r.Category)
		assert.NotEqual(t, projects[0].ID, r.ID)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(models.CollectionProjects, models.Project{Title: "Gone", Category: models.CategorySocialMedia}))
	id := store.Projects()[0].ID

	assert.True(t, store.Delete(models.CollectionProjects, id))
	assert.Empty(t, store.Projects())

	// Deleting an absent row still reports success, matching the original.
	assert.True(t, store.Delete(models.CollectionProjects, id))
	assert.False(t, store.Delete("bogus", 1))
}

func TestGetUnknownCollection(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Nil(t, store.Get("users"))
	assert.Nil(t, store.GetOne("users"))
}

func TestSetUnknownCollection(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.Set("users", Record{"name": "x"}))
}

func TestGetOneMissingSingleton(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Nil(t, store.GetOne(models.CollectionProfile))
	assert.Nil(t, store.Profile())
	assert.Nil(t, store.CV())
}

func TestGetOrdersByAscendingID(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(models.CollectionFAQ, []models.FAQ{
		{Question: "first"}, {Question: "second"}, {Question: "third"},
	}))

	records := store.Get(models.CollectionFAQ)
	require.Len(t, records, 3)
	assert.EqualValues(t, "first", records[0]["question"])
	assert.EqualValues(t, "third", records[2]["question"])
}

func TestSnapshot(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(models.CollectionProfile, models.Profile{Name: "Tiara"}))
	require.NoError(t, store.Set(models.CollectionStats, []models.Stat{{Label: "X", Value: "1"}}))
	require.NoError(t, store.Set(models.CollectionProjects, models.Project{
		Title:    "P",
		Category: models.CategorySocialMedia,
		Image:    datatypes.JSON(`["http://a"]`),
	}))

	snap := store.Snapshot(context.Background())
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "Tiara", snap.Profile.Name)
	assert.Len(t, snap.Stats, 1)
	assert.Len(t, snap.Projects, 1)
	assert.Nil(t, snap.SocialLinks)
	assert.Nil(t, snap.PopupSettings)
}

func TestUploadFile(t *testing.T) {
	store, blobs := newTestStore(t)

	url := store.UploadFile(context.Background(), "cv-files", "cv.pdf", strings.NewReader("%PDF"), "application/pdf")
	require.NotEmpty(t, url)
	assert.True(t, strings.HasPrefix(url, "memory://cv-files/"))
	assert.True(t, strings.HasSuffix(url, "-cv.pdf"))

	keys := blobs.Keys("cv-files")
	require.Len(t, keys, 1)
	data, ok := blobs.Object("cv-files", keys[0])
	require.True(t, ok)
	assert.Equal(t, "%PDF", string(data))
}

// failingBlobs rejects every upload.
type failingBlobs struct{}

func (failingBlobs) Upload(context.Context, string, string, io.Reader, string) error {
	return errors.New("bucket unavailable")
}

func (failingBlobs) PublicURL(bucket, key string) string {
	return "memory://" + bucket + "/" + key
}

func TestUploadFileFailureYieldsEmptyURL(t *testing.T) {
	store, _ := newTestStore(t)
	store.blobs = failingBlobs{}

	url := store.UploadFile(context.Background(), "cv-files", "cv.pdf", strings.NewReader("x"), "")
	assert.Empty(t, url)
}
