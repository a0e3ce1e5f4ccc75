package api

import (
	"github.com/tiaraw/portfolio-backend/auth"
	"github.com/tiaraw/portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, credentials auth.Credentials, sessions *auth.Manager, captcha *auth.Captcha) *routeHandlers {
	return &routeHandlers{
		contentHandler: newContentHandler(database.ContentStore()),
		adminHandler:   newAdminHandler(database.ContentStore()),
		authHandler:    newAuthHandler(credentials, sessions, captcha),
	}
}
