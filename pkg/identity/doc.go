// Package identity provides the type-safe identifier wrappers and the
// content-addressed hashing primitive shared by the rest of the engine.
//
// NodeID is the only non-trivial identifier: it is derived from a node's
// content and its parent's identity, so that identical content at an
// identical position in the tree always yields the same ID, on any
// platform, on any run.
package identity
