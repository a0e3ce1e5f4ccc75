package models

import (
	"fmt"
	"strings"
	"unicode"
)

// SocialLinks holds the raw handles the admin entered. Email and WhatsApp are
// stored as typed by the admin (an address, a phone number) and turned into
// working hrefs at render time. Singleton pinned to id 1.
type SocialLinks struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	LinkedIn  string `json:"linkedin" gorm:"type:text"`
	Instagram string `json:"instagram" gorm:"type:text"`
	Email     string `json:"email" gorm:"type:text"`
	WhatsApp  string `json:"whatsapp" gorm:"type:text"`
}

func (SocialLinks) TableName() string {
	return string(CollectionSocialLinks)
}

// SocialHrefs is the render-ready form of SocialLinks.
type SocialHrefs struct {
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
	Email     string `json:"email"`
	WhatsApp  string `json:"whatsapp"`
}

// Hrefs normalizes the stored handles into protocol links: email becomes a
// mailto: link and WhatsApp becomes a wa.me link built from the digits of the
// stored number. Empty values normalize to "#" so anchors stay inert.
func (s SocialLinks) Hrefs() SocialHrefs {
	return SocialHrefs{
		LinkedIn:  passthroughHref(s.LinkedIn),
		Instagram: passthroughHref(s.Instagram),
		Email:     emailHref(s.Email),
		WhatsApp:  WhatsAppHref(s.WhatsApp),
	}
}

func passthroughHref(value string) string {
	if value == "" {
		return "#"
	}
	return value
}

func emailHref(value string) string {
	if value == "" {
		return "#"
	}
	return "mailto:" + value
}

// WhatsAppHref builds a wa.me link from whatever number format the admin
// entered, keeping digits only.
func WhatsAppHref(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "#"
	}
	return fmt.Sprintf("https://wa.me/%s", digits.String())
}
