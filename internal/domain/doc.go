// Package domain contains the core entities of the application: generation
// task statuses and their cached records, and track records with their blob
// file references. Domain types carry validation and derivation logic but
// perform no I/O; persistence and transport concerns live in the platform
// and api packages.
package domain
