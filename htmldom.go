// Package htmldom provides an arena-backed HTML document model: a tree
// builder fed by an external HTML5 parser, a CSS selector compiler and
// matcher, a document-order query iterator, and an HTML serializer.
//
// Parsing does not fail hard. Malformed markup produces diagnostics on the
// tree and a best-effort document; the only hard failures are selector
// syntax errors, reported at compile time.
//
// This package contains domain types and the pure core following Ben
// Johnson's Standard Package Layout. Implementations that carry a dependency
// live in subdirectories named after that dependency (e.g., xhtml/,
// markdown/).
package htmldom
