package testsupport

import "strings"

// SQLiteMemoryDSN returns a shared-cache in-memory sqlite DSN private to
// name, so parallel tests never see each other's tables.
func SQLiteMemoryDSN(name string) string {
	replacer := strings.NewReplacer("/", "_", " ", "_", "#", "_")
	return "file:" + replacer.Replace(name) + "?mode=memory&cache=shared&_fk=1"
}
