package store

const (
	insertRun = `INSERT INTO backup_runs (run_id, artifact_id, created_at, encrypted_size, chunked, chunk_count, pushed)
    VALUES (?, ?, ?, ?, ?, ?, ?);`

	markRunPushed = `UPDATE backup_runs
    SET pushed = 1
    WHERE artifact_id = ?;`

	listRuns = `SELECT run_id, artifact_id, created_at, encrypted_size, chunked, chunk_count, pushed
    FROM backup_runs
    ORDER BY artifact_id;`

	deleteRun = `DELETE FROM backup_runs
    WHERE artifact_id = ?;`
)
