// Package cli provides the interactive RecipeArchive command-line client.
//
// It wires configuration, the local session database, the API client, the
// observable stores and the services, then runs a REPL. The prompt follows
// the auth store, and errors recorded in either store are printed by store
// listeners, so commands only print their results.
//
// Commands:
//   - signup / login / logout / whoami / profile / deleteaccount
//   - list, mine, user <id>: browse recipes
//   - show <id>, add, edit <id>, delete <id>: work with one recipe
//
// App.Run resumes a stored session and blocks until the user exits.
package cli
