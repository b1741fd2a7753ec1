// Package cli provides the interactive GarageHub command-line client.
//
// It wires configuration, session storage, the entry store API client, and
// an interactive REPL that drives the entry-assembly flow: pick car facts,
// tags and mods (catalog selection with fall-through to custom authoring),
// stage photos, and commit the assembled entry to the store.
//
// Key commands:
//   - login / logout (bearer token, persisted between runs)
//   - list / show entries
//   - add / edit (the assembly wizard, over a blank or a seeded draft)
//   - delete
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
