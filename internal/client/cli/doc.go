// Package cli implements the interactive AgriVision client: a REPL whose
// commands are the feature views (dashboard, soil health, pest alerts,
// reports, profitable crops, yield prediction, irrigation, local weather),
// gated behind the session state. Every view follows the same fetch
// lifecycle: loading notice, optional cache seed, fetch through the HTTP
// facade, then render, error banner, or documented fallback dataset.
package cli
