// Package services implements the driving ports on top of the domain.
//
// Editor wraps a SectionTree for one open draft and serialises every
// command behind a mutex, so the autosave goroutine only ever exports a
// consistent outline. DraftService opens and saves editors through the
// DraftStore port. Autosaver and Scheduler save dirty editors on an
// interval, and SettingsService maps AppSettings onto ConfigStore keys.
package services
