package domain

import "time"

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	// Outline holds numbering engine settings.
	Outline OutlineSettings

	// Autosave holds periodic save settings.
	Autosave AutosaveSettings

	// API holds Persistence API settings.
	API APISettings
}

// OutlineSettings configures the outline numbering engine.
type OutlineSettings struct {
	// DepthUnit is the stored depth step between outline levels.
	DepthUnit int

	// StrictSwap rejects moves across depth boundaries.
	StrictSwap bool

	// SubOptionGrowth selects legacy or corrected sub-option growth.
	SubOptionGrowth SubOptionGrowth
}

// Policy converts the settings to an OutlinePolicy.
func (o OutlineSettings) Policy() OutlinePolicy {
	return OutlinePolicy{
		DepthUnit:       o.DepthUnit,
		StrictSwap:      o.StrictSwap,
		SubOptionGrowth: o.SubOptionGrowth,
	}.normalised()
}

// AutosaveSettings configures the autosave task.
type AutosaveSettings struct {
	// Enabled indicates whether open drafts are saved periodically.
	Enabled bool

	// Interval is the time between two autosave runs.
	Interval time.Duration
}

// SchedulerConfig converts the settings to a scheduler configuration.
func (a AutosaveSettings) SchedulerConfig() SchedulerConfig {
	interval := a.Interval
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return SchedulerConfig{
		Enabled: a.Enabled,
		TaskConfigs: map[string]TaskConfig{
			TaskIDDraftAutosave: {Enabled: a.Enabled, Interval: interval},
		},
	}
}

// EditorInterval is the time between two autosaves of an open editor,
// or zero when autosave is disabled.
func (a AutosaveSettings) EditorInterval() time.Duration {
	if !a.Enabled {
		return 0
	}
	cfg := a.SchedulerConfig()
	return cfg.TaskConfigFor(TaskIDDraftAutosave).Interval
}

// APISettings configures the remote Persistence API.
// An empty BaseURL selects the local SQLite store instead.
type APISettings struct {
	// BaseURL is the API root, e.g. https://admin.example.com/action.
	BaseURL string

	// Token is the bearer token sent with every request.
	Token string

	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64
}

// IsConfigured returns true if a remote API should be used.
func (a APISettings) IsConfigured() bool {
	return a.BaseURL != ""
}

// DefaultAPIRequestsPerSecond is the default outgoing request rate.
const DefaultAPIRequestsPerSecond = 5.0

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Outline: OutlineSettings{
			DepthUnit:       DefaultDepthUnit,
			StrictSwap:      false,
			SubOptionGrowth: SubOptionGrowthLegacy,
		},
		Autosave: AutosaveSettings{
			Enabled:  true,
			Interval: DefaultAutosaveInterval,
		},
		API: APISettings{
			RequestsPerSecond: DefaultAPIRequestsPerSecond,
		},
	}
}
