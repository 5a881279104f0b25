// Package classify matches a normalized dependency set against a catalog.
//
// [Classify] walks direct dependencies first, then indirect ones, and files
// every catalog hit under its category together with the suggested inline
// alternative. Packages the catalog does not know but whose names are short
// land in the synthetic "other" category as candidates worth a human look;
// everything else is left out of the [Result].
//
// Classification is a pure function of its inputs. It performs no I/O, keeps
// no state between calls and cannot fail: malformed catalogs and manifests
// are rejected by [catalog] and [deps] before they get here.
//
// # Category filter
//
// [Options.Category] restricts output to a single category, "other"
// included. Counters and package lists then only reflect that category.
//
// [catalog]: github.com/matzehuels/sillydeps/pkg/catalog
// [deps]: github.com/matzehuels/sillydeps/pkg/deps
package classify
