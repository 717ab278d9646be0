// Package mder implements MDer-core: the shared build/match engine that
// interprets the parenthesised text grammar against a parameter vector,
// per spec.md §4.8. Build reads parameters and emits an Element; Match
// walks an Element and writes parameters. Both share the parser in
// parse.go and the keyword table in keywords.go.
package mder
