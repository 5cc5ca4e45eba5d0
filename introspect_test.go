package duckhttp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// reflectionServer answers the fixed introspection queries with canned
// DuckDB-shaped payloads.
func reflectionServer(t *testing.T) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		query := string(data)

		switch {
		case strings.Contains(query, "duckdb_schemas"):
			w.Write([]byte(`[["memory","main"],["memory","information_schema"]]`))
		case strings.Contains(query, "duckdb_tables"):
			w.Write([]byte(`[["memory","main","transactions"],["memory","main","blocks"]]`))
		case strings.Contains(query, "information_schema.tables"):
			w.Write([]byte(`[["active_wallets"]]`))
		case strings.HasPrefix(query, "DESCRIBE"):
			w.Write([]byte(`[["id","BIGINT","NO",null,null,null],["amount","DECIMAL(18,3)","YES",null,null,null]]`))
		case strings.HasPrefix(query, "PRAGMA table_info"):
			w.Write([]byte(`[[0,"id","BIGINT",true,null,"true"],[1,"amount","DECIMAL(18,3)",false,null,false]]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(server.Close)

	return NewClient(testConfig(t, server))
}

func TestInspectorSchemaNames(t *testing.T) {
	inspector := NewInspector(reflectionServer(t))

	names, err := inspector.SchemaNames(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"main", "information_schema"}, names)
}

func TestInspectorTableNames(t *testing.T) {
	inspector := NewInspector(reflectionServer(t))

	names, err := inspector.TableNames(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"transactions", "blocks"}, names)
}

func TestInspectorViewNames(t *testing.T) {
	inspector := NewInspector(reflectionServer(t))

	names, err := inspector.ViewNames(context.Background(), "main")

	assert.NoError(t, err)
	assert.Equal(t, []string{"active_wallets"}, names)
}

func TestInspectorColumns(t *testing.T) {
	inspector := NewInspector(reflectionServer(t))

	columns, err := inspector.Columns(context.Background(), "transactions", "")

	assert.NoError(t, err)
	assert.Equal(t, []ColumnInfo{
		{Name: "id", Type: "BIGINT", Kind: KindInteger, Nullable: false},
		{Name: "amount", Type: "DECIMAL(18,3)", Kind: KindDecimal, Nullable: true},
	}, columns)
}

func TestInspectorPrimaryKeys(t *testing.T) {
	inspector := NewInspector(reflectionServer(t))

	// The pk flag is accepted as either a JSON boolean or the string
	// "true".
	keys, err := inspector.PrimaryKeys(context.Background(), "transactions", "main")

	assert.NoError(t, err)
	assert.Equal(t, []string{"id"}, keys)
}

func TestInspectorUnsupportedReflection(t *testing.T) {
	inspector := NewInspector(reflectionServer(t))

	keys, err := inspector.ForeignKeys(context.Background(), "transactions", "")

	assert.NoError(t, err)
	assert.Equal(t, 0, len(keys))

	indexes, err := inspector.Indexes(context.Background(), "transactions", "")

	assert.NoError(t, err)
	assert.Equal(t, 0, len(indexes))
}
