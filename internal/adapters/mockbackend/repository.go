package mockbackend

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/core/favorite"
	"weatherdash.app/internal/core/preference"
	"weatherdash.app/pkg/errors"
)

// FavoriteCityModel represents the database model for favorite cities
type FavoriteCityModel struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"not null;index:idx_favorite_identity"`
	Country   string  `gorm:"not null;index:idx_favorite_identity"`
	State     *string
	Lat       float64 `gorm:"not null;index:idx_favorite_identity"`
	Lon       float64 `gorm:"not null;index:idx_favorite_identity"`
	CreatedAt int64   `gorm:"autoCreateTime:milli;not null"`
}

func (FavoriteCityModel) TableName() string {
	return "favorite_cities"
}

// UserPreferenceModel represents the database model for the preference row
type UserPreferenceModel struct {
	ID              uint   `gorm:"primaryKey"`
	DefaultCity     string `gorm:"not null"`
	TemperatureUnit string `gorm:"not null"`
	WindSpeedUnit   string `gorm:"not null"`
	ShowCurrentCard bool
	ShowLineChart   bool
	ShowBarChart    bool
	ShowGaugeCard   bool
	ShowAlertsCard  bool
	ShowAiAssistant bool
	CreatedAt       int64 `gorm:"autoCreateTime:milli"`
	UpdatedAt       int64 `gorm:"autoUpdateTime:milli"`
}

func (UserPreferenceModel) TableName() string {
	return "user_preferences"
}

// OpenDatabase connects with the configured driver and migrates the schema
func OpenDatabase(cfg config.MockBackendConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, errors.NewConfigurationError("unsupported database driver: "+cfg.DBDriver, nil)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.NewDatabaseError("failed to connect to database", err)
	}

	if err := db.AutoMigrate(&FavoriteCityModel{}, &UserPreferenceModel{}); err != nil {
		return nil, errors.NewDatabaseError("failed to migrate database", err)
	}

	return db, nil
}

// Repository persists favorites and preferences using GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFavorites returns favorites newest first
func (r *Repository) ListFavorites(ctx context.Context) ([]city.City, error) {
	var models []FavoriteCityModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list favorites", err)
	}

	out := make([]city.City, 0, len(models))
	for i := range models {
		out = append(out, models[i].toCity())
	}
	return out, nil
}

// AddFavorite inserts a favorite. Duplicates are stored as separate rows.
func (r *Repository) AddFavorite(ctx context.Context, create favorite.Create) (city.City, error) {
	model := FavoriteCityModel{
		Name:      create.Name,
		Country:   create.Country,
		State:     create.State,
		Lat:       create.Lat,
		Lon:       create.Lon,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return city.City{}, errors.NewDatabaseError("failed to add favorite", err)
	}
	return model.toCity(), nil
}

// RemoveFavorite deletes every favorite with key's identity. Removing an
// absent favorite is not an error.
func (r *Repository) RemoveFavorite(ctx context.Context, key city.Key) error {
	err := r.db.WithContext(ctx).
		Where("name = ? AND country = ? AND lat = ? AND lon = ?", key.Name, key.Country, key.Lat, key.Lon).
		Delete(&FavoriteCityModel{}).Error
	if err != nil {
		return errors.NewDatabaseError("failed to remove favorite", err)
	}
	return nil
}

// GetPreferences returns the first preference row, creating the defaults on first read
func (r *Repository) GetPreferences(ctx context.Context) (preference.Preference, error) {
	model, err := r.firstPreference(ctx)
	if err != nil {
		return preference.Preference{}, err
	}
	if model == nil {
		model = preferenceModel(preference.Defaults())
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return preference.Preference{}, errors.NewDatabaseError("failed to create default preferences", err)
		}
	}
	return model.toPreference(), nil
}

// UpdatePreferences replaces every field of the preference row
func (r *Repository) UpdatePreferences(ctx context.Context, p preference.Preference) (preference.Preference, error) {
	existing, err := r.firstPreference(ctx)
	if err != nil {
		return preference.Preference{}, err
	}

	model := preferenceModel(p)
	if existing != nil {
		model.ID = existing.ID
		model.CreatedAt = existing.CreatedAt
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return preference.Preference{}, errors.NewDatabaseError("failed to update preferences", err)
	}
	return model.toPreference(), nil
}

func (r *Repository) firstPreference(ctx context.Context) (*UserPreferenceModel, error) {
	var models []UserPreferenceModel
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(1).Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to load preferences", err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return &models[0], nil
}

func (m *FavoriteCityModel) toCity() city.City {
	c := city.City{Name: m.Name, Country: m.Country, Lat: m.Lat, Lon: m.Lon}
	if m.State != nil {
		state := *m.State
		c.State = &state
	}
	return c
}

func preferenceModel(p preference.Preference) *UserPreferenceModel {
	return &UserPreferenceModel{
		DefaultCity:     p.DefaultCity,
		TemperatureUnit: p.TemperatureUnit,
		WindSpeedUnit:   p.WindSpeedUnit,
		ShowCurrentCard: p.ShowCurrentCard,
		ShowLineChart:   p.ShowLineChart,
		ShowBarChart:    p.ShowBarChart,
		ShowGaugeCard:   p.ShowGaugeCard,
		ShowAlertsCard:  p.ShowAlertsCard,
		ShowAiAssistant: p.ShowAiAssistant,
	}
}

func (m *UserPreferenceModel) toPreference() preference.Preference {
	id := int64(m.ID)
	return preference.Preference{
		ID:              &id,
		DefaultCity:     m.DefaultCity,
		TemperatureUnit: m.TemperatureUnit,
		WindSpeedUnit:   m.WindSpeedUnit,
		ShowCurrentCard: m.ShowCurrentCard,
		ShowLineChart:   m.ShowLineChart,
		ShowBarChart:    m.ShowBarChart,
		ShowGaugeCard:   m.ShowGaugeCard,
		ShowAlertsCard:  m.ShowAlertsCard,
		ShowAiAssistant: m.ShowAiAssistant,
	}
}
