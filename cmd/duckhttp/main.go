package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	duckhttp "github.com/duckhttp/duckhttp-go"
)

// Context carries the global flags shared by every command.
type Context struct {
	Config   string
	Profile  string
	DSN      string
	ReadOnly bool
	Timeout  int
}

func (ctx *Context) client() (*duckhttp.Client, error) {
	config, err := ctx.resolveConfig()

	if err != nil {
		return nil, err
	}

	if ctx.ReadOnly {
		config.ReadOnly = true
	}

	return duckhttp.NewClient(config), nil
}

func (ctx *Context) resolveConfig() (duckhttp.Config, error) {
	if ctx.DSN != "" {
		return duckhttp.ParseDSN(ctx.DSN)
	}

	if ctx.Config != "" {
		profiles, err := duckhttp.LoadProfiles(ctx.Config)

		if err != nil {
			return duckhttp.Config{}, err
		}

		return profiles.Resolve(ctx.Profile)
	}

	return duckhttp.FromEnv()
}

func (ctx *Context) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(ctx.Timeout)*time.Second)
}

// QueryCmd runs one query and prints the result.
type QueryCmd struct {
	Query  string `arg:"" help:"SQL text to execute."`
	Format string `long:"format" default:"table" enum:"table,json,csv" help:"Output format (table, json, csv)."`
}

func (cmd *QueryCmd) Run(ctx *Context) error {
	client, err := ctx.client()

	if err != nil {
		return err
	}

	queryCtx, cancel := ctx.queryContext()
	defer cancel()

	cursor := client.Cursor()

	if err := cursor.Execute(queryCtx, cmd.Query); err != nil {
		return err
	}

	return writeResult(os.Stdout, cmd.Format, cursor.Description(), cursor.FetchAll())
}

// SchemasCmd lists schemas.
type SchemasCmd struct{}

func (cmd *SchemasCmd) Run(ctx *Context) error {
	return runListCommand(ctx, func(queryCtx context.Context, inspector *duckhttp.Inspector) ([]string, error) {
		return inspector.SchemaNames(queryCtx)
	})
}

// TablesCmd lists base tables.
type TablesCmd struct{}

func (cmd *TablesCmd) Run(ctx *Context) error {
	return runListCommand(ctx, func(queryCtx context.Context, inspector *duckhttp.Inspector) ([]string, error) {
		return inspector.TableNames(queryCtx)
	})
}

// ColumnsCmd describes the columns of one table.
type ColumnsCmd struct {
	Table  string `arg:"" help:"Table to describe."`
	Schema string `long:"schema" help:"Schema qualifier."`
}

func (cmd *ColumnsCmd) Run(ctx *Context) error {
	client, err := ctx.client()

	if err != nil {
		return err
	}

	queryCtx, cancel := ctx.queryContext()
	defer cancel()

	columns, err := duckhttp.NewInspector(client).Columns(queryCtx, cmd.Table, cmd.Schema)

	if err != nil {
		return err
	}

	header := []duckhttp.Column{{Name: "name"}, {Name: "type"}, {Name: "nullable"}}
	rows := make([]duckhttp.Row, len(columns))

	for i, column := range columns {
		rows[i] = duckhttp.Row{column.Name, column.Type, column.Nullable}
	}

	return writeResult(os.Stdout, "table", header, rows)
}

func runListCommand(ctx *Context, list func(context.Context, *duckhttp.Inspector) ([]string, error)) error {
	client, err := ctx.client()

	if err != nil {
		return err
	}

	queryCtx, cancel := ctx.queryContext()
	defer cancel()

	names, err := list(queryCtx, duckhttp.NewInspector(client))

	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Println(name)
	}

	return nil
}

var cli struct {
	Config   string `short:"c" help:"Path to a YAML profiles file." type:"path"`
	Profile  string `short:"p" help:"Profile name from the profiles file."`
	DSN      string `long:"dsn" help:"Connection string (host=... port=... password=...)."`
	ReadOnly bool   `long:"read-only" help:"Reject statements the read-only classifier does not allow."`
	Timeout  int    `long:"timeout" default:"30" help:"Query timeout in seconds."`

	Query   QueryCmd   `cmd:"" help:"Run a query against the endpoint."`
	Schemas SchemasCmd `cmd:"" help:"List schemas."`
	Tables  TablesCmd  `cmd:"" help:"List tables."`
	Columns ColumnsCmd `cmd:"" help:"Describe the columns of a table."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("duckhttp"),
		kong.Description("Query a DuckDB instance exposed over HTTP."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&Context{
		Config:   cli.Config,
		Profile:  cli.Profile,
		DSN:      cli.DSN,
		ReadOnly: cli.ReadOnly,
		Timeout:  cli.Timeout,
	})
	ctx.FatalIfErrorf(err)
}
