package duckhttp

import (
	"database/sql"
	"database/sql/driver"
)

func init() {
	sql.Register("duckhttp", &Driver{})
}

// Driver exposes the client through database/sql. The DSN is the
// space-separated key=value form understood by ParseDSN.
type Driver struct{}

func (d *Driver) Open(name string) (driver.Conn, error) {
	config, err := ParseDSN(name)

	if err != nil {
		return nil, err
	}

	return &Conn{client: NewClient(config)}, nil
}

func (d *Driver) OpenConnector(name string) (driver.Connector, error) {
	config, err := ParseDSN(name)

	if err != nil {
		return nil, err
	}

	return &Connector{
		driver: d,
		client: NewClient(config),
	}, nil
}
