package command_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fixture-generator/cmd/fixture-generator/internal/command"
	"fixture-generator/store"
	"fixture-generator/typesig"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	color.NoColor = true

	var out, errOut bytes.Buffer
	cmd := command.NewRootCommand(command.NewCLI(&out, &errOut))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestSample_JSON(t *testing.T) {
	out, _, err := run(t, "sample", "--type", "store.Order", "--seed", "7", "-o", "json")
	require.NoError(t, err)

	var order store.Order
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	assert.NotZero(t, order.ID)
	assert.NotEmpty(t, order.Items)

	again, _, err := run(t, "sample", "--type", "store.Order", "--seed", "7", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestSample_CountAndShapes(t *testing.T) {
	out, _, err := run(t, "sample", "--type", "store.Page", "--arg", "store.Product", "--seed", "3", "--count", "3")
	require.NoError(t, err)

	var pages []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &pages))
	require.Len(t, pages, 3)

	for _, p := range pages {
		assert.Contains(t, p, "Items")
		assert.Contains(t, p, "Cursor")
	}

	assert.NotEqual(t, pages[0], pages[1], "each value has its own seed")
}

func TestSample_Overrides(t *testing.T) {
	overrides := writeFile(t, "overrides.yaml", `
ignore: [Notes]
set:
  Status: PAID
  Items[].Quantity: 2
filter:
  TotalCents: value > 5000
`)

	out, _, err := run(t, "sample", "--type", "store.Order", "--seed", "5", "--count", "4", "-o", "json",
		"--overrides", overrides)
	require.NoError(t, err)

	var orders []store.Order
	require.NoError(t, json.Unmarshal([]byte(out), &orders))
	require.Len(t, orders, 4)

	for _, o := range orders {
		assert.Equal(t, store.StatusPaid, o.Status)
		assert.Nil(t, o.Notes)
		assert.Greater(t, o.TotalCents, int64(5000))

		for _, item := range o.Items {
			assert.Equal(t, 2, item.Quantity)
		}
	}
}

func TestSample_Settings(t *testing.T) {
	cfg := writeFile(t, "settings.yaml", `
collection:
  minSize: 1
  maxSize: 1
`)

	out, _, err := run(t, "sample", "--type", "store.Order", "-o", "json", "--settings", cfg)
	require.NoError(t, err)

	var order store.Order
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	assert.Len(t, order.Items, 1)
}

func TestSample_Errors(t *testing.T) {
	_, _, err := run(t, "sample", "--type", "store.Ordr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.Order")

	_, _, err = run(t, "sample", "--type", "store.Order", "--arg", "int")
	assert.ErrorContains(t, err, "takes no type arguments")

	var unresolved *typesig.UnresolvedTypeError
	_, _, err = run(t, "sample", "--type", "store.Page")
	assert.ErrorAs(t, err, &unresolved)

	_, _, err = run(t, "sample", "--type", "store.Order", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = run(t, "sample", "--type", "store.Order", "--count", "0")
	assert.ErrorContains(t, err, "--count")

	_, _, err = run(t, "sample")
	assert.ErrorContains(t, err, "type")
}

func TestGraph(t *testing.T) {
	out, _, err := run(t, "graph", "--type", "store.Category")
	require.NoError(t, err)
	assert.Contains(t, out, "Category")
	assert.Contains(t, out, "Parent")
	assert.Contains(t, out, "CycleDetected")

	detailed, _, err := run(t, "graph", "--type", "store.Order", "--detailed")
	require.NoError(t, err)
	assert.Contains(t, detailed, "Order.Items[].Name")
}

func TestTypes(t *testing.T) {
	out, _, err := run(t, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "Go types:")
	assert.Contains(t, out, "store.Order")
	assert.Contains(t, out, "warehouse.Shipment")
	assert.Contains(t, out, "store.Page[T]")
}

func TestCatalog_Request(t *testing.T) {
	c := command.BuiltinCatalog()

	req, err := c.Request("store.Order", nil)
	require.NoError(t, err)
	assert.Equal(t, typesig.RequestFor[store.Order](), req)

	req, err = c.Request("store.Page", []string{"time.Time"})
	require.NoError(t, err)
	assert.Equal(t, "store.Page", req.Shape)
	require.Len(t, req.Args, 1)

	_, err = c.Request("store.Page", []string{"nope"})
	assert.ErrorContains(t, err, "argument nope")

	u := typesig.NewUniverse()
	require.NoError(t, c.Register(u))

	_, ok := u.Shape("store.Page")
	assert.True(t, ok)
}

func TestOverrides(t *testing.T) {
	o, err := command.ParseOverrides([]byte(`
ignore: [Notes, Items[].Name]
nullable: [Customer]
set:
  Status: PAID
filter:
  TotalCents: value > 0
`))
	require.NoError(t, err)

	reg, err := o.Registry()
	require.NoError(t, err)
	assert.Equal(t, 5, reg.Len())

	_, err = command.ParseOverrides([]byte("ignored: [Notes]"))
	assert.Error(t, err, "unknown key")

	empty, err := command.ParseOverrides(nil)
	require.NoError(t, err)

	reg, err = empty.Registry()
	require.NoError(t, err)
	assert.Zero(t, reg.Len())

	bad := &command.Overrides{Ignore: []string{"Items[", "1st"}, Filter: map[string]string{"ID": "value >"}}
	_, err = bad.Registry()
	assert.Error(t, err)
}
