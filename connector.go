package duckhttp

import (
	"context"
	"database/sql/driver"
)

type Connector struct {
	driver driver.Driver
	client *Client
}

func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	return &Conn{client: c.client}, nil
}

func (c *Connector) Driver() driver.Driver {
	return c.driver
}
