package duckhttp

// Result satisfies driver.Result for statements executed through Exec.
// The endpoint reports neither change counts nor insert ids.
type Result struct{}

func (r Result) LastInsertId() (int64, error) {
	return 0, nil
}

func (r Result) RowsAffected() (int64, error) {
	return 0, nil
}
