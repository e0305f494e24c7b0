// Package phonecrawl provides a host-scoped crawler for classifieds sites.
// It walks a site breadth-first from a seed URL, extracts contact phone
// numbers from every page it fetches, and publishes the deduplicated
// result set to pluggable sinks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package phonecrawl
