// Package blinkcodec provides a schema-driven binary message codec
// implementing the Blink protocol: a compact, self-describing wire
// format built from groups of typed fields, with inheritance,
// polymorphic dispatch, and pluggable frame compression.
//
// # Core Features
//
//   - Variable-length-coded (VLC) primitives: int, float, string,
//     binary, decimal, bigint, time, enum
//   - Schema-driven groups with inheritance and dynamic (polymorphic)
//     references
//   - A reflect-based default host binding, or bring your own
//   - Optional frame compression (None, Zstd, S2, LZ4)
//   - Size-prefixed framing with forward-compatible trailing-field
//     skipping
//
// # Basic Usage
//
// Building a schema, binding it to Go types, and round-tripping a
// message:
//
//	import "github.com/mbrannstrom/blinkcodec"
//
//	s, _ := schema.New(schema.GroupDef{
//	    Name: "Order", ID: blinkcodec.GroupID(1),
//	    Fields: []schema.FieldDef{
//	        {Name: "id", ID: blinkcodec.GroupID(1), Type: schema.Int(64, false), Required: true},
//	        {Name: "symbol", ID: blinkcodec.GroupID(2), Type: schema.String(0), Required: true},
//	    },
//	})
//
//	b := binding.NewReflectBinding()
//	b.Register("Order", Order{})
//
//	c, _ := blinkcodec.New(s, b)
//
//	var buf bytes.Buffer
//	_ = c.Encode(&buf, &Order{ID: 42, Symbol: "ACME"})
//	got, _ := c.Decode(&buf)
//
// # Package Structure
//
// This package is a convenience wrapper around compile, dispatch, and
// codec. For fine-grained control over compilation or registry
// construction, use those packages directly.
package blinkcodec

import (
	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/codec"
	"github.com/mbrannstrom/blinkcodec/compile"
	"github.com/mbrannstrom/blinkcodec/compress"
	"github.com/mbrannstrom/blinkcodec/dispatch"
	"github.com/mbrannstrom/blinkcodec/schema"
)

// Option configures a Codec built through New. It is an alias of
// codec.Option so callers never need to import package codec directly
// for the common case.
type Option = codec.Option

// WithFrameCompression configures optional frame payload compression.
// See codec.WithFrameCompression.
func WithFrameCompression(c compress.Codec) Option {
	return codec.WithFrameCompression(c)
}

// GroupID is a convenience constructor for the *uint64 IDs schema.GroupDef
// and schema.FieldDef expect, avoiding a throwaway local helper at every
// call site.
func GroupID(v uint64) *uint64 { return &v }

// New compiles s against b and returns a ready-to-use Codec: the
// one-call path through compile.Compile, dispatch.NewRegistry, and
// codec.New for callers who don't need the intermediate registry for
// anything else.
func New(s *schema.Schema, b binding.Binding, opts ...Option) (*codec.Codec, error) {
	instrs, err := compile.Compile(s, b)
	if err != nil {
		return nil, err
	}

	reg := dispatch.NewRegistry(instrs)

	return codec.New(reg, b, opts...)
}
