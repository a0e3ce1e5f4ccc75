package models

// Collection names one of the seven content tables the site is built from.
type Collection string

const (
	CollectionProjects      Collection = "projects"
	CollectionProfile       Collection = "profile"
	CollectionStats         Collection = "stats"
	CollectionFAQ           Collection = "faq"
	CollectionSocialLinks   Collection = "social_links"
	CollectionCV            Collection = "cv_url"
	CollectionPopupSettings Collection = "popup_settings"
)

// Collections lists every known collection in the order the admin dashboard
// presents them.
var Collections = []Collection{
	CollectionProjects,
	CollectionProfile,
	CollectionStats,
	CollectionFAQ,
	CollectionSocialLinks,
	CollectionCV,
	CollectionPopupSettings,
}

// SingletonID is the fixed row identity every singleton collection is pinned
// to. Writes to those collections always overwrite this row.
const SingletonID int64 = 1

// ParseCollection returns the collection with the given name, or false when
// the name is not one of the seven known collections.
func ParseCollection(name string) (Collection, bool) {
	for _, c := range Collections {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// IsSingleton reports whether c holds exactly one live row (pinned to id 1).
func (c Collection) IsSingleton() bool {
	switch c {
	case CollectionProfile, CollectionSocialLinks, CollectionCV, CollectionPopupSettings:
		return true
	}
	return false
}

// IsReplaceAll reports whether writes to c replace the full row set. Row
// identity for these collections is not stable across saves: every save
// deletes everything and reinserts with store-assigned ids.
func (c Collection) IsReplaceAll() bool {
	return c == CollectionStats || c == CollectionFAQ
}

func (c Collection) String() string {
	return string(c)
}
