package database

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tiaraw/portfolio-backend/blobstore"
	"github.com/tiaraw/portfolio-backend/models"
)

// Record is one raw row of a collection, as served to the admin editor.
type Record map[string]any

// ContentStore is the single access path to the seven content collections.
// Reads fail soft: a fetch error is logged and collapsed into an empty
// result, indistinguishable from genuinely empty data. Writes return errors
// as values; nothing raises past this boundary.
//
// There is no cross-call locking and no version check on writes. A Set
// unconditionally overwrites whatever is stored, so two concurrent editors of
// the same singleton or replace-all collection race and the last writer wins.
type ContentStore struct {
	db     *gorm.DB
	blobs  blobstore.Store
	logger zerolog.Logger
}

func NewContentStore(db *gorm.DB, blobs blobstore.Store) *ContentStore {
	return &ContentStore{
		db:     db,
		blobs:  blobs,
		logger: log.With().Str("component", "contentStore").Logger(),
	}
}

// Get returns every row of the collection ordered by ascending id. Unknown
// collections and fetch failures both yield nil.
func (s *ContentStore) Get(c models.Collection) []Record {
	if _, ok := models.ParseCollection(string(c)); !ok {
		s.logger.Warn().Str("collection", string(c)).Msg("get on unknown collection")
		return nil
	}

	var rows []map[string]any
	if err := s.db.Table(string(c)).Order("id ASC").Find(&rows).Error; err != nil {
		s.logger.Error().Err(err).Str("collection", string(c)).Msg("failed to fetch collection")
		return nil
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeRecord(row))
	}
	return records
}

// GetOne returns the single row of a singleton collection, or nil when the
// row does not exist yet (or the fetch failed).
func (s *ContentStore) GetOne(c models.Collection) Record {
	rows := s.Get(c)
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// Set writes payload to the collection using the strategy its shape demands:
//
//   - stats, faq: replace-all. Every existing row is deleted and the payload
//     rows are reinserted with ids and timestamps stripped, so the store
//     assigns fresh identities. An empty payload empties the collection.
//   - projects: keyed upsert. A payload carrying an existing id updates that
//     row; without an id a new row is created.
//   - singletons: the id is forced to 1 and the row upserted, overwriting the
//     one canonical row regardless of what identity the caller supplied.
//
// The payload may be a typed model, a Record, or anything JSON-shaped like
// one; it is always a full replacement object, never a partial update.
func (s *ContentStore) Set(c models.Collection, payload any) error {
	var err error
	switch {
	case c.IsReplaceAll():
		err = s.replaceAll(c, payload)
	case c == models.CollectionProjects:
		err = s.upsertProject(payload)
	case c.IsSingleton():
		err = s.upsertSingleton(c, payload)
	default:
		return fmt.Errorf("set: unknown collection %q", c)
	}

	if err != nil {
		s.logger.Error().Err(err).Str("collection", string(c)).Msg("failed to save collection")
	}
	return err
}

func (s *ContentStore) replaceAll(c models.Collection, payload any) error {
	switch c {
	case models.CollectionStats:
		return replaceAllRows(s.db, payload, func(row *models.Stat) { row.ID = 0 })
	case models.CollectionFAQ:
		return replaceAllRows(s.db, payload, func(row *models.FAQ) { row.ID = 0 })
	}
	return fmt.Errorf("replace-all: unsupported collection %q", c)
}

// replaceAllRows deletes every row and bulk-inserts the payload. Decoding
// into the typed row drops unknown payload fields (created_at and friends);
// strip zeroes the incoming ids so the store assigns fresh ones.
func replaceAllRows[T any](db *gorm.DB, payload any, strip func(*T)) error {
	var rows []T
	if payload != nil {
		if err := decodeInto(payload, &rows); err != nil {
			return err
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Where("id <> ?", 0).Delete(&zero).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			strip(&rows[i])
		}
		return tx.Create(&rows).Error
	})
}

func (s *ContentStore) upsertProject(payload any) error {
	var project models.Project
	if err := decodeInto(payload, &project); err != nil {
		return err
	}
	return upsertByID(s.db, &project)
}

func (s *ContentStore) upsertSingleton(c models.Collection, payload any) error {
	switch c {
	case models.CollectionProfile:
		return singletonUpsert(s.db, payload, func(p *models.Profile) { p.ID = models.SingletonID })
	case models.CollectionSocialLinks:
		return singletonUpsert(s.db, payload, func(l *models.SocialLinks) { l.ID = models.SingletonID })
	case models.CollectionCV:
		return singletonUpsert(s.db, payload, func(cv *models.CV) { cv.ID = models.SingletonID })
	case models.CollectionPopupSettings:
		return singletonUpsert(s.db, payload, func(p *models.PopupSettings) { p.ID = models.SingletonID })
	}
	return fmt.Errorf("singleton upsert: unsupported collection %q", c)
}

func singletonUpsert[T any](db *gorm.DB, payload any, pin func(*T)) error {
	var row T
	if err := decodeInto(payload, &row); err != nil {
		return err
	}
	pin(&row)
	return upsertByID(db, &row)
}

// upsertByID inserts the row, or fully replaces the existing row when its id
// already exists.
func upsertByID(db *gorm.DB, row any) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(row).Error
}

// Delete removes the row with the given identity. Failures are swallowed into
// false; a delete of an absent row reports true, matching the original store.
func (s *ContentStore) Delete(c models.Collection, id int64) bool {
	proto, err := prototype(c)
	if err != nil {
		s.logger.Warn().Str("collection", string(c)).Msg("delete on unknown collection")
		return false
	}

	if err := s.db.Delete(proto, id).Error; err != nil {
		s.logger.Error().Err(err).Str("collection", string(c)).Int64("id", id).Msg("failed to delete row")
		return false
	}
	return true
}

// UploadFile stores the file under a timestamped key in the named bucket and
// returns its public URL, or "" when the upload failed. There is no retry and
// no partial-file cleanup: either the object exists with a fetchable URL or
// it does not.
func (s *ContentStore) UploadFile(ctx context.Context, bucket, filename string, body io.Reader, contentType string) string {
	key := blobstore.ObjectKey(filename)
	if err := s.blobs.Upload(ctx, bucket, key, body, contentType); err != nil {
		s.logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("upload failed")
		return ""
	}
	return s.blobs.PublicURL(bucket, key)
}

func prototype(c models.Collection) (any, error) {
	switch c {
	case models.CollectionProjects:
		return &models.Project{}, nil
	case models.CollectionProfile:
		return &models.Profile{}, nil
	case models.CollectionStats:
		return &models.Stat{}, nil
	case models.CollectionFAQ:
		return &models.FAQ{}, nil
	case models.CollectionSocialLinks:
		return &models.SocialLinks{}, nil
	case models.CollectionCV:
		return &models.CV{}, nil
	case models.CollectionPopupSettings:
		return &models.PopupSettings{}, nil
	}
	return nil, fmt.Errorf("unknown collection %q", c)
}

// decodeInto converts an arbitrary JSON-shaped payload into the typed target
// through one marshal/unmarshal round trip. Unknown fields are dropped.
func decodeInto(payload, target any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

// normalizeRecord makes raw driver values JSON-friendly: byte slices holding
// JSON pass through verbatim, anything else becomes a plain string.
func normalizeRecord(row map[string]any) Record {
	record := make(Record, len(row))
	for key, value := range row {
		if b, ok := value.([]byte); ok {
			if json.Valid(b) {
				record[key] = json.RawMessage(b)
			} else {
				record[key] = string(b)
			}
			continue
		}
		record[key] = value
	}
	return record
}
