// Package screens holds the terminal-independent screen controllers of the
// catalog client.
//
// Two shapes exist. Fetch screens (catalog, profile, notifications, header)
// move Idle → Loading → Ready | Failed on every Load. Form screens (login,
// signup, add item, edit profile) move Editing → Validating → Submitting →
// Succeeded, and fall back to Editing with field errors or an alert when
// validation or the request fails.
//
// Every screen except login and signup needs a *session.Session and fails
// with ErrNoSession without one.
package screens
