// Package javadex provides a local, CLI-based toolkit for javadoc
// member-search indexes. It decodes the member-search-index.js artifact
// that javadoc generates, checks it for structural problems, stores it,
// searches it the way the browser search widget does, and verifies its
// anchors against the rendered documentation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, etree/).
package javadex
