// Package preflight provides readiness checks for the paths and storage the
// inventory editor depends on.
//
// The CLI "cdinventory status" command runs RunAll and renders each Result.
// Checks never modify the inventory: a missing inventory file is reported,
// not created, and the session lock is only probed.
package preflight
