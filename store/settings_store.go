// api/store/settings_store.go
package store

import (
	"sync"
	"time"

	"cristalclean/api/models"
	"cristalclean/api/storage"
)

// SettingsStore is plain CRUD over the settings document.
type SettingsStore struct {
	mu       sync.Mutex
	files    *storage.Client
	settings models.SiteSettings
}

func NewSettingsStore(files *storage.Client) *SettingsStore {
	return &SettingsStore{files: files, settings: defaultSettings()}
}

func (ss *SettingsStore) Load() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	var s models.SiteSettings
	if ss.files.ReadJSON(settingsFile, &s) {
		ss.settings = s
	}
}

func (ss *SettingsStore) Get() models.SiteSettings {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.settings
}

func (ss *SettingsStore) Update(s models.SiteSettings) (models.SiteSettings, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s.UpdatedAt = time.Now()
	if err := ss.files.WriteJSON(settingsFile, s); err != nil {
		return ss.settings, err
	}
	ss.settings = s
	return s, nil
}

func defaultSettings() models.SiteSettings {
	return models.SiteSettings{
		CompanyName:  "CristalClean",
		Tagline:      "Votre partenaire propreté en Suisse romande",
		Phone:        "+41 22 555 00 00",
		Email:        "contact@cristalclean.ch",
		WhatsApp:     "+41 79 555 00 00",
		Address:      "Genève, Suisse",
		PrimaryColor: "#0e7490",
		AccentColor:  "#22d3ee",
		HeroTitle:    "Un intérieur impeccable, sans effort",
		HeroSubtitle: "Nettoyage professionnel pour particuliers et entreprises",
	}
}
