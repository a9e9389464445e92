// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DraftStore: The Persistence API (createDraft/updateDraft). Backed by
//     SQLite locally or by the remote admin API.
//   - SchedulerStore: Background task state and history
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RichTextRenderer: Produces bodyHtml for edited bodies. Without it,
//     bodies are stored and their cached HTML is left untouched.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
