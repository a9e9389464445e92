// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps application settings in ~/.drafter/config.toml as
// nested TOML tables, exposed to the core as flat dot-separated keys, and
// reloads it when the file changes on disk.
package file
