// Package domain models California wildfire incidents aggregated from public
// data feeds.
//
// # Data Sources
//
// Incident records arrive from three structurally different upstreams, all
// fetched over plain HTTP GET and all treated as unreliable:
//
//   - A structured geodata feed: a feature collection where each feature
//     carries a geometry (longitude-first coordinate pair) and a properties
//     bag with name, acres, containment percentage, active flag, county,
//     location, url, and start date. Field presence is not guaranteed.
//   - An RSS feed of incident updates. Acres and containment appear only as
//     free text inside item descriptions ("30,519 acres, 5% contained").
//   - An HTML incident-listing page, used as a last-resort fallback that can
//     surface a fire's name and link when the richer sources are down.
//
// # Identity and Merging
//
// Different sources report the same fire under slightly different names
// ("Gifford Fire", "Gifford Fire - update", "GIFFORD FIRE COMPLEX"). The
// identity key lower-cases the name and removes the " fire" and " complex"
// substrings; see [IdentityKey]. Records sharing a key are folded together by
// [Merge], which is deliberately monotone: acres and containment take the
// maximum observed across sources and the active flag stays set if any source
// reports the fire active. Averaging would under-report a worsening fire when
// one source lags.
//
// # Retention
//
// Inactive incidents age out 30 days past their start date. Start dates that
// cannot be parsed never cause a drop: when in doubt the fire stays listed.
package domain
