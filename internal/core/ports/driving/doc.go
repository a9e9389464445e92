// Package driving defines what the CLI, the MCP server and the TUI may ask
// of the core: open a draft as a DraftEditor, edit its outline, save it,
// and read or change settings.
//
// Editor levels are logical outline levels; the editor converts them to
// stored depths with the configured depth unit.
package driving
