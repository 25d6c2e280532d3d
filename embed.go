// Package domainkit provides domain-modeling primitives: specifications,
// entities, aggregates, repositories and domain services. See the packages
// under pkg for the library itself; the root package only embeds the
// migrations used by the example application and its tests.
package domainkit

import "embed"

// Migrations holds the example application's database migrations.
//
//go:embed migrations
var Migrations embed.FS
