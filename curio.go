// Package curio is a personal cataloguing tool for creative works found
// on the web. Its core is a best-effort metadata extraction pipeline that
// fetches a page and reconciles several unreliable signal sources (embedded
// structured data, meta tags, linked syndication feeds, visible page text)
// into one structured record. Items, cabinets and notes persist what the
// user chooses to keep.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gofeed/, http/).
package curio
