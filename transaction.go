package duckhttp

// Transaction satisfies driver.Tx. The endpoint is autocommit and has no
// transaction protocol, so Commit and Rollback do nothing.
type Transaction struct{}

func (t *Transaction) Commit() error {
	return nil
}

func (t *Transaction) Rollback() error {
	return nil
}
