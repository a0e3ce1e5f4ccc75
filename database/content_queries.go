package database

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tiaraw/portfolio-backend/models"
)

// Typed read paths for the public site. Like the generic Get, these fail
// soft: a fetch error is logged and the caller sees empty data.

func (s *ContentStore) Projects() []models.Project {
	var projects []models.Project
	if err := s.db.Order("id ASC").Find(&projects).Error; err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch projects")
		return nil
	}
	return projects
}

// Project returns the project with the given id, or nil when it does not
// exist or the fetch failed.
func (s *ContentStore) Project(id int64) *models.Project {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error().Err(err).Int64("id", id).Msg("failed to fetch project")
		}
		return nil
	}
	return &project
}

// RelatedProjects returns up to limit projects sharing the category of the
// given project, excluding the project itself.
func (s *ContentStore) RelatedProjects(project models.Project, limit int) []models.Project {
	var related []models.Project
	err := s.db.
		Where("category = ? AND id <> ?", project.Category, project.ID).
		Order("id ASC").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		s.logger.Error().Err(err).Int64("id", project.ID).Msg("failed to fetch related projects")
		return nil
	}
	return related
}

func (s *ContentStore) Stats() []models.Stat {
	var stats []models.Stat
	if err := s.db.Order("id ASC").Find(&stats).Error; err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch stats")
		return nil
	}
	return stats
}

func (s *ContentStore) FAQ() []models.FAQ {
	var faq []models.FAQ
	if err := s.db.Order("id ASC").Find(&faq).Error; err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch faq")
		return nil
	}
	return faq
}

func (s *ContentStore) Profile() *models.Profile {
	return singletonRow[models.Profile](s)
}

func (s *ContentStore) SocialLinks() *models.SocialLinks {
	return singletonRow[models.SocialLinks](s)
}

func (s *ContentStore) CV() *models.CV {
	return singletonRow[models.CV](s)
}

func (s *ContentStore) PopupSettings() *models.PopupSettings {
	return singletonRow[models.PopupSettings](s)
}

func singletonRow[T any](s *ContentStore) *T {
	var row T
	if err := s.db.First(&row, models.SingletonID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error().Err(err).Msg("failed to fetch singleton row")
		}
		return nil
	}
	return &row
}

// Snapshot is the full site content in one payload, what the home page and
// the admin dashboard load up front.
type Snapshot struct {
	Projects      []models.Project      `json:"projects"`
	Profile       *models.Profile       `json:"profile"`
	Stats         []models.Stat         `json:"stats"`
	FAQ           []models.FAQ          `json:"faq"`
	SocialLinks   *models.SocialLinks   `json:"social_links"`
	CV            *models.CV            `json:"cv_url"`
	PopupSettings *models.PopupSettings `json:"popup_settings"`
}

// Snapshot fetches all seven collections concurrently. Individual fetch
// failures have already been collapsed into empty data, so the snapshot
// itself never fails.
func (s *ContentStore) Snapshot(ctx context.Context) Snapshot {
	var snap Snapshot

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { snap.Projects = s.Projects(); return nil })
	g.Go(func() error { snap.Profile = s.Profile(); return nil })
	g.Go(func() error { snap.Stats = s.Stats(); return nil })
	g.Go(func() error { snap.FAQ = s.FAQ(); return nil })
	g.Go(func() error { snap.SocialLinks = s.SocialLinks(); return nil })
	g.Go(func() error { snap.CV = s.CV(); return nil })
	g.Go(func() error { snap.PopupSettings = s.PopupSettings(); return nil })
	_ = g.Wait()

	return snap
}
