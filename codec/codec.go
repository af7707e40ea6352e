package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/compress"
	"github.com/mbrannstrom/blinkcodec/dispatch"
	"github.com/mbrannstrom/blinkcodec/errs"
	"github.com/mbrannstrom/blinkcodec/internal/buffer"
	"github.com/mbrannstrom/blinkcodec/internal/options"
	"github.com/mbrannstrom/blinkcodec/wire"
)

// Codec is the framed codec frontend: it turns a compiled, dispatched
// schema into Encode/Decode calls against arbitrary byte sinks and
// sources. A Codec is safe for concurrent use once constructed — each
// call leases its own buffer from the pool and returns it on every
// exit path.
type Codec struct {
	registry    *dispatch.Registry
	binding     binding.Binding
	pool        *buffer.Pool
	compression compress.Codec
}

// New builds a Codec over an already-compiled registry and a host
// binding. Both are required: the registry supplies the per-group wire
// instructions, the binding supplies the live get/set/factory surface
// those instructions run against.
func New(reg *dispatch.Registry, b binding.Binding, opts ...Option) (*Codec, error) {
	if reg == nil {
		return nil, fmt.Errorf("codec: registry is required")
	}
	if b == nil {
		return nil, fmt.Errorf("codec: binding is required")
	}

	c := &Codec{
		registry: reg,
		binding:  b,
		pool:     buffer.NewPool(buffer.DefaultSize, buffer.MaxThreshold),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Encode writes obj as one framed message to sink: a size-prefixed
// preamble, the group's wire ID, and its flattened fields in
// declaration order.
func (c *Codec) Encode(sink Sink, obj any) error {
	gi, err := c.registry.ForObject(obj, c.binding)
	if err != nil {
		return err
	}
	if !gi.HasID() {
		return fmt.Errorf("group %q: %w", gi.GroupName, errs.ErrMissingGroupID)
	}

	buf := c.pool.Get()
	defer c.pool.Put(buf)

	err = buffer.WriteSized(buf, func() error {
		if err := wire.WriteUint(buf, *gi.GroupID); err != nil {
			return err
		}

		if c.compression == nil {
			return gi.EncodeFields(buf, obj, c.binding)
		}

		fieldBuf := c.pool.Get()
		defer c.pool.Put(fieldBuf)

		if err := gi.EncodeFields(fieldBuf, obj, c.binding); err != nil {
			return err
		}

		compressed, err := c.compression.Compress(fieldBuf.Bytes())
		if err != nil {
			return fmt.Errorf("compress frame payload: %w", err)
		}

		_, err = buf.Write(compressed)

		return err
	})
	if err != nil {
		return err
	}

	return buf.CopyTo(sink, 0, buf.Len())
}

// Decode reads one framed message from source and returns the decoded
// host object. It returns io.EOF when the stream has no more frames —
// either a true EOF before any byte of the next size VLC is read, or
// a declared size of zero, per the decoding protocol's end-of-stream
// indicators.
func (c *Codec) Decode(source Source) (any, error) {
	size, isNull, err := wire.ReadUintStream(source)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("read frame size: %w: %w", errs.ErrIO, err)
	}
	if isNull || size == 0 {
		return nil, io.EOF
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(source, payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read frame payload: %w: %v", errs.ErrTruncated, err)
		}

		return nil, fmt.Errorf("read frame payload: %w: %w", errs.ErrIO, err)
	}

	r := wire.NewReader(payload)
	groupID, idIsNull, err := wire.ReadUint(r)
	if err != nil {
		return nil, fmt.Errorf("read group id: %w", overrunIfTruncated(err))
	}
	if idIsNull {
		return nil, fmt.Errorf("frame group id: %w", errs.ErrInvalidVlcHeader)
	}

	gi, err := c.registry.ForID(groupID)
	if err != nil {
		return nil, err
	}

	obj, err := c.binding.Factory(gi.GroupName)
	if err != nil {
		return nil, err
	}

	fieldReader := r
	if c.compression != nil {
		rest, err := r.ReadN(r.Remaining())
		if err != nil {
			return nil, overrunIfTruncated(err)
		}

		decompressed, err := c.compression.Decompress(rest)
		if err != nil {
			return nil, fmt.Errorf("decompress frame payload: %w", err)
		}

		fieldReader = wire.NewReader(decompressed)
	}

	if err := gi.DecodeFields(fieldReader, obj, c.binding); err != nil {
		return nil, overrunIfTruncated(err)
	}

	// Forward compatibility: a sender's newer schema may have written
	// trailing fields this reader's schema doesn't know about.
	if n := fieldReader.Remaining(); n > 0 {
		_ = fieldReader.Skip(n)
	}

	return obj, nil
}

// overrunIfTruncated reclassifies a truncation fault raised while
// reading within a frame's own bounded region as a FrameOverrun: the
// region was already sliced to the frame's declared size, so running
// out of bytes there means the payload demanded more than it declared,
// not that the underlying source ran dry.
func overrunIfTruncated(err error) error {
	if errors.Is(err, errs.ErrTruncated) {
		return fmt.Errorf("%v: %w", err, errs.ErrFrameOverrun)
	}

	return err
}
