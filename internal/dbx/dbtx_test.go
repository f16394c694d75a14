package dbx

import "database/sql"

// The interface must stay satisfiable by both plain connections and
// transactions so repositories can run inside either.
var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
