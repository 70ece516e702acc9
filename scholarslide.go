// Package scholarslide converts a single scholarly web article into a small
// set of bounded, labeled text fields (population, intervention, setting,
// primary outcome, key findings, plus citation metadata) ready for rendering
// into a fixed-layout slide.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/) or the
// process they own (acquire/, extract/, convert/).
package scholarslide
