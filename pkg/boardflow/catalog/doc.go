// Package catalog provides the built-in node set: control flow, logging,
// string and integer helpers, and the gated HTTP request node.
//
// Register the whole set with RegisterAll, or register individual nodes
// for a trimmed-down host.
package catalog
