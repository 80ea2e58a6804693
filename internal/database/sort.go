package database

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// SortAdapter translates a client-supplied sort token into a sort document.
// A leading "-" means descending. Fields outside the allowed set fail
// closed by falling back to the primary identity field.
func SortAdapter(token string, allowed map[string]bool) bson.D {
	field := strings.TrimSpace(token)
	dir := 1
	if strings.HasPrefix(field, "-") {
		dir = -1
		field = field[1:]
	}
	if field == "" || !allowed[field] {
		field = "_id"
	}
	return bson.D{{Key: field, Value: dir}}
}
