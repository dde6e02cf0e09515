// Package models defines the core domain records for homeledger.
//
// Every record that lives in the per-user key-value space embeds Meta,
// which carries the assigned id and the creation/update timestamps. The
// JSON field names mirror the on-disk format exactly, so a store written
// by one device can be exported and imported verbatim on another.
//
// Each mutable record type has a companion Patch type whose fields are
// all optional. Patches are the only way to update a stored record: an
// unset field leaves the stored value alone, a set field overwrites it.
// This keeps partial updates typed instead of merging untyped maps.
package models
