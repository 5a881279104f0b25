// Package catalog holds the curated list of trivial npm packages.
//
// # Overview
//
// A catalog maps category names to packages, and each package to a short
// suggestion for replacing it inline:
//
//	{
//	  "padding": {"left-pad": "Use String.prototype.padStart()"},
//	  "type-checks": {"is-odd": "n % 2 !== 0"}
//	}
//
// Catalogs are loaded once and never mutated, so a single value can be
// shared by concurrent audits. Several catalogs may coexist (a custom one
// per project, a small one per test); nothing in this package is global
// except the bundled default data.
//
// # Loading
//
// [Load] reads JSON, [LoadTOML] reads one table per category and [LoadFile]
// dispatches on the file extension. [Default] returns the catalog compiled
// into the binary. Every load failure carries the CATALOG_LOAD error code.
//
// # Lookup
//
// [Catalog.Lookup] scans categories in declaration order. Package names are
// expected to be unique across categories; when they are not, the first
// category wins.
package catalog
