package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// frameConfig stands in for the kind of target this package's real
// callers configure (codec.Codec): a handful of
// setters, one of which can fail validation.
type frameConfig struct {
	MaxFrameSize int
	Compression  string
	Pooled       bool
	LastCall     string
}

func (fc *frameConfig) SetMaxFrameSize(n int) error {
	if n <= 0 {
		return errors.New("max frame size must be positive")
	}
	fc.MaxFrameSize = n
	fc.LastCall = "SetMaxFrameSize"

	return nil
}

func (fc *frameConfig) SetCompression(name string) {
	fc.Compression = name
	fc.LastCall = "SetCompression"
}

func (fc *frameConfig) SetPooled(pooled bool) {
	fc.Pooled = pooled
	fc.LastCall = "SetPooled"
}

func TestOption_New(t *testing.T) {
	cfg := &frameConfig{}

	t.Run("creates option that can return error", func(t *testing.T) {
		opt := New(func(c *frameConfig) error {
			return c.SetMaxFrameSize(4096)
		})

		err := opt.apply(cfg)
		require.NoError(t, err)
		require.Equal(t, 4096, cfg.MaxFrameSize)
		require.Equal(t, "SetMaxFrameSize", cfg.LastCall)
	})

	t.Run("propagates errors from option function", func(t *testing.T) {
		opt := New(func(c *frameConfig) error {
			return c.SetMaxFrameSize(-1)
		})

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "max frame size must be positive")
	})
}

func TestOption_NoError(t *testing.T) {
	cfg := &frameConfig{}

	t.Run("creates option from function without error", func(t *testing.T) {
		opt := NoError(func(c *frameConfig) {
			c.SetCompression("zstd")
		})

		err := opt.apply(cfg)
		require.NoError(t, err)
		require.Equal(t, "zstd", cfg.Compression)
		require.Equal(t, "SetCompression", cfg.LastCall)
	})

	t.Run("works with boolean setter", func(t *testing.T) {
		opt := NoError(func(c *frameConfig) {
			c.SetPooled(true)
		})

		err := opt.apply(cfg)
		require.NoError(t, err)
		require.True(t, cfg.Pooled)
		require.Equal(t, "SetPooled", cfg.LastCall)
	})
}

func TestOption_Apply(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := &frameConfig{}
		opts := []Option[*frameConfig]{
			New(func(c *frameConfig) error { return c.SetMaxFrameSize(1024) }),
			NoError(func(c *frameConfig) { c.SetCompression("lz4") }),
			NoError(func(c *frameConfig) { c.SetPooled(true) }),
		}

		err := Apply(cfg, opts...)
		require.NoError(t, err)
		require.Equal(t, 1024, cfg.MaxFrameSize)
		require.Equal(t, "lz4", cfg.Compression)
		require.True(t, cfg.Pooled)
		require.Equal(t, "SetPooled", cfg.LastCall)
	})

	t.Run("stops at first error and returns it", func(t *testing.T) {
		cfg := &frameConfig{}

		opts := []Option[*frameConfig]{
			New(func(c *frameConfig) error { return c.SetMaxFrameSize(512) }),
			New(func(c *frameConfig) error { return c.SetMaxFrameSize(-1) }),
			NoError(func(c *frameConfig) { c.SetCompression("should not be set") }),
		}

		err := Apply(cfg, opts...)
		require.Error(t, err)
		require.Contains(t, err.Error(), "max frame size must be positive")
		require.Equal(t, 512, cfg.MaxFrameSize)
		require.Equal(t, "", cfg.Compression)
		require.Equal(t, "SetMaxFrameSize", cfg.LastCall)
	})

	t.Run("works with empty options slice", func(t *testing.T) {
		cfg := &frameConfig{}
		err := Apply(cfg)
		require.NoError(t, err)
		require.Equal(t, 0, cfg.MaxFrameSize)
		require.Equal(t, "", cfg.Compression)
		require.False(t, cfg.Pooled)
	})
}

func TestOption_Integration(t *testing.T) {
	withMaxFrameSize := func(n int) Option[*frameConfig] {
		return New(func(c *frameConfig) error {
			return c.SetMaxFrameSize(n)
		})
	}

	withCompression := func(name string) Option[*frameConfig] {
		return NoError(func(c *frameConfig) {
			c.SetCompression(name)
		})
	}

	withPooled := func(pooled bool) Option[*frameConfig] {
		return NoError(func(c *frameConfig) {
			c.SetPooled(pooled)
		})
	}

	t.Run("works with With*-style helper functions", func(t *testing.T) {
		cfg := &frameConfig{}
		err := Apply(cfg,
			withMaxFrameSize(65536),
			withCompression("s2"),
			withPooled(true),
		)

		require.NoError(t, err)
		require.Equal(t, 65536, cfg.MaxFrameSize)
		require.Equal(t, "s2", cfg.Compression)
		require.True(t, cfg.Pooled)
	})
}

// simpleTarget exercises the generic parameter with a type unrelated to
// frameConfig, confirming Option[T] isn't accidentally tied to one shape.
type simpleTarget struct {
	Data string
}

func TestOption_GenericsWithDifferentTypes(t *testing.T) {
	t.Run("works with a struct target", func(t *testing.T) {
		s := &simpleTarget{}
		opt := NoError(func(st *simpleTarget) {
			st.Data = "generic test"
		})

		err := opt.apply(s)
		require.NoError(t, err)
		require.Equal(t, "generic test", s.Data)
	})

	t.Run("works with a primitive target", func(t *testing.T) {
		var num int
		opt := NoError(func(n *int) {
			*n = 42
		})

		err := opt.apply(&num)
		require.NoError(t, err)
		require.Equal(t, 42, num)
	})
}
