package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyDepthUnit         = "outline.depth_unit"
	KeyStrictSwap        = "outline.strict_swap"
	KeySubOptionGrowth   = "outline.suboption_growth"
	KeyAutosaveEnabled   = "autosave.enabled"
	KeyAutosaveInterval  = "autosave.interval"
	KeyAPIBaseURL        = "api.base_url"
	KeyAPIToken          = "api.token"
	KeyAPIRequestsPerSec = "api.requests_per_second"
)

type configValue struct {
	key   string
	value any
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Outline: domain.OutlineSettings{
			DepthUnit:       s.getInt(KeyDepthUnit, defaults.Outline.DepthUnit),
			StrictSwap:      s.getBool(KeyStrictSwap, defaults.Outline.StrictSwap),
			SubOptionGrowth: s.getGrowth(defaults.Outline.SubOptionGrowth),
		},
		Autosave: domain.AutosaveSettings{
			Enabled:  s.getBool(KeyAutosaveEnabled, defaults.Autosave.Enabled),
			Interval: s.getDuration(KeyAutosaveInterval, defaults.Autosave.Interval),
		},
		API: domain.APISettings{
			BaseURL:           s.configStore.GetString(KeyAPIBaseURL), // No default - empty selects the local store
			Token:             s.configStore.GetString(KeyAPIToken),
			RequestsPerSecond: s.getFloat(KeyAPIRequestsPerSec, defaults.API.RequestsPerSecond),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := validate(settings); err != nil {
		return err
	}

	values := []configValue{
		{KeyDepthUnit, settings.Outline.DepthUnit},
		{KeyStrictSwap, settings.Outline.StrictSwap},
		{KeySubOptionGrowth, settings.Outline.SubOptionGrowth.String()},
		{KeyAutosaveEnabled, settings.Autosave.Enabled},
		{KeyAutosaveInterval, settings.Autosave.Interval.String()},
		{KeyAPIBaseURL, settings.API.BaseURL},
		{KeyAPIRequestsPerSec, settings.API.RequestsPerSecond},
	}
	if settings.API.Token != "" {
		values = append(values, configValue{KeyAPIToken, settings.API.Token})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyDepthUnit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Outline.DepthUnit = n
	case KeyStrictSwap:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Outline.StrictSwap = b
	case KeySubOptionGrowth:
		settings.Outline.SubOptionGrowth = domain.SubOptionGrowth(value)
	case KeyAutosaveEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Autosave.Enabled = b
	case KeyAutosaveInterval:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a duration such as 30s", domain.ErrInvalidInput, key)
		}
		settings.Autosave.Interval = d
	case KeyAPIBaseURL:
		settings.API.BaseURL = value
	case KeyAPIToken:
		settings.API.Token = value
	case KeyAPIRequestsPerSec:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.API.RequestsPerSecond = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeyDepthUnit, KeyStrictSwap, KeySubOptionGrowth,
		KeyAutosaveEnabled, KeyAutosaveInterval,
		KeyAPIBaseURL, KeyAPIToken, KeyAPIRequestsPerSec,
	}
	sort.Strings(keys)
	return keys
}

// Watch sends the settings each time the config store reports a change.
// It fails with domain.ErrNotImplemented when the store cannot be watched.
// The channel is closed when ctx is done.
func (s *SettingsService) Watch(ctx context.Context) (<-chan *domain.AppSettings, error) {
	watcher, ok := s.configStore.(driven.ConfigWatcher)
	if !ok {
		return nil, fmt.Errorf("watch settings: %w", domain.ErrNotImplemented)
	}
	changes, err := watcher.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("watch settings: %w", err)
	}

	updates := make(chan *domain.AppSettings)
	go func() {
		defer close(updates)
		for range changes {
			settings, err := s.Get()
			if err != nil {
				logger.Warn("reading reloaded settings: %v", err)
				continue
			}
			if err := validate(settings); err != nil {
				logger.Warn("ignoring reloaded settings: %v", err)
				continue
			}
			select {
			case updates <- settings:
			case <-ctx.Done():
				return
			}
		}
	}()
	return updates, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validate(settings *domain.AppSettings) error {
	if settings.Outline.DepthUnit <= 0 {
		return fmt.Errorf("%w: depth unit must be positive", domain.ErrInvalidInput)
	}
	if !settings.Outline.SubOptionGrowth.IsValid() {
		return fmt.Errorf("%w: sub-option growth must be %q or %q", domain.ErrInvalidInput,
			domain.SubOptionGrowthLegacy, domain.SubOptionGrowthCorrected)
	}
	if settings.Autosave.Interval <= 0 {
		return fmt.Errorf("%w: autosave interval must be positive", domain.ErrInvalidInput)
	}
	if settings.API.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests per second must be positive", domain.ErrInvalidInput)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getGrowth(defaultVal domain.SubOptionGrowth) domain.SubOptionGrowth {
	growth := domain.SubOptionGrowth(s.configStore.GetString(KeySubOptionGrowth))
	if !growth.IsValid() {
		return defaultVal
	}
	return growth
}
