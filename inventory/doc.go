// Package inventory defines the records managed by the library inventory
// service: authors and the books they own. It also provides the validation
// for caller-supplied record fields and the sentinel errors shared between
// the storage engine and the HTTP API.
package inventory
