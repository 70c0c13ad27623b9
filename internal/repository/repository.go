// Package repository wraps the document store with per-entity access:
// schema validation on every read, batch intents on every write. Nothing
// here commits a batch; that stays with the calling access layer.
package repository

// ParseFailure records one document that failed schema validation during a
// bulk read. Bulk reads return the documents that parsed plus these, so a
// single broken record cannot poison a whole collection fetch.
type ParseFailure struct {
	UUID string
	Err  error
}

func docUuid(raw map[string]interface{}) string {
	uuid, _ := raw["uuid"].(string)
	return uuid
}
