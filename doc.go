package tableopts

// Package tableopts decodes table reading options from a parsed JSON or YAML
// document:
//
// - Decode/Decoder turn a document tree into TableReaderOptions (schema, table name, fields)
// - The field list is delegated to a pluggable FieldListDecoder; DecodeFields is the default
// - A stable error model via Issue (JSON Pointer, code, message); type mismatches read
//   "type mismatch for field '<name>': expected <type>, received <type>"
// - Document building via Source with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep the public API in the root package; put tokenizer plumbing under internal/.
// - JSON drivers live under source/; YAML documents are read by source/yamldoc.
// - The CLI lives under cmd/tableopts and the HTTP API under internal/web.
//
// Typical usage:
//
//  opts, err := tableopts.DecodeBytes(data)
//  doc, err := tableopts.ParseDocument(tableopts.JSONBytes(data), tableopts.ParseOpt{MaxDepth: 32})
//  opts, err = tableopts.NewDecoder(tableopts.WithFieldListDecoder(myFields)).Decode(doc)
//
// Decoding is fail-fast: the first recognized key whose value has the wrong
// type aborts the call and no partial result is returned. Unrecognized keys
// are skipped, and when a key repeats the last occurrence wins.
