package curly

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
delimiters:
  open: "<%"
  close: "%>"
builtins:
  text: true
  os: false
variables:
  name: World
  retries: 3
  ratio: 0.5
store:
  driver: memory
`))
		require.NoError(t, err)
		require.NotNil(t, cfg.Delimiters)
		assert.Equal(t, "<%", cfg.Delimiters.Open)
		assert.Equal(t, "%>", cfg.Delimiters.Close)
		require.NotNil(t, cfg.Builtins)
		assert.Nil(t, cfg.Builtins.Math)
		require.NotNil(t, cfg.Builtins.OS)
		assert.False(t, *cfg.Builtins.OS)
		assert.Equal(t, "World", cfg.Variables["name"])
		assert.Equal(t, StorageDriverNameMemory, cfg.Store.Driver)

		engine, err := New(cfg.Options()...)
		require.NoError(t, err)
		assert.False(t, engine.ContainsFunction("env"))
		assert.True(t, engine.ContainsFunction("add_u8"))

		out, err := engine.Render("<% name %> x<% retries %> <% ratio %>")
		require.NoError(t, err)
		assert.Equal(t, "World x3 0.5", out)
	})

	t.Run("empty input", func(t *testing.T) {
		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		assert.Empty(t, cfg.Options())

		store, err := cfg.OpenStore()
		assert.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := ParseConfig([]byte("delimeters:\n  open: x\n"))
		require.Error(t, err)
	})

	t.Run("invalid delimiters surface from New", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("delimiters:\n  open: \"\"\n  close: \"}}\"\n"))
		require.NoError(t, err)
		_, err = New(cfg.Options()...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidDelimiters)
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads file and opens store", func(t *testing.T) {
		storeDir := filepath.Join(dir, "templates")
		path := filepath.Join(dir, "curly.yaml")
		data := "variables:\n  who: file\nstore:\n  driver: filesystem\n  dsn: " + storeDir + "\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		store, err := cfg.OpenStore()
		require.NoError(t, err)
		defer store.Close()

		ctx := context.Background()
		require.NoError(t, store.Put(ctx, "t", "from {{ who }}"))

		engine := MustNew(append(cfg.Options(), WithStore(store))...)
		out, err := engine.RenderStored(ctx, "t")
		require.NoError(t, err)
		assert.Equal(t, "from file", out)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "absent.yaml")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgReadConfig)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		got, ok := customErr.GetMetadata(MetaKeyPath)
		assert.True(t, ok)
		assert.Equal(t, path, got)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("variables: [unclosed"), 0o644))
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgParseConfig)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{Store: &StoreConfig{Driver: "nope"}}
		_, err := cfg.OpenStore()
		require.Error(t, err)
		assert.Equal(t, ErrorKindStorage, ErrorKindOf(err))
	})
}
