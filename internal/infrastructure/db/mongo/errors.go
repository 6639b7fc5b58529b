package mongo

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Unique index names, as created by the embedded migrations.
const (
	indexUniqExternalID = "uniq_external_id"
	indexUniqEmail      = "uniq_email"
	indexUniqActiveHost = "uniq_active_host"
	indexUniqCallID     = "uniq_call_id"
)

const (
	codeDuplicateKey         = 11000
	codeDuplicateKeyOnUpdate = 11001
)

// duplicateKeyIndex reports whether err is a duplicate key write error and
// returns the name of the unique index it violated. The name is empty when
// the server message does not carry one.
func duplicateKeyIndex(err error) (string, bool) {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return "", false
	}
	for _, e := range we.WriteErrors {
		if e.Code == codeDuplicateKey || e.Code == codeDuplicateKeyOnUpdate {
			return indexFromMessage(e.Message), true
		}
	}
	return "", false
}

// indexFromMessage extracts the index name from a server message of the form
// "E11000 duplicate key error collection: db.users index: uniq_email dup key: {...}".
func indexFromMessage(msg string) string {
	_, rest, ok := strings.Cut(msg, " index: ")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, " ")
	return name
}
