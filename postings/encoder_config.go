package postings

import (
	"fmt"

	"github.com/arloliu/blockpack/compress"
	"github.com/arloliu/blockpack/endian"
	"github.com/arloliu/blockpack/format"
	"github.com/arloliu/blockpack/internal/options"
	"github.com/arloliu/blockpack/section"
)

// EncoderConfig holds the configuration shared by posting list encoders.
type EncoderConfig struct {
	header *section.Header
	codec  compress.Codec
	engine endian.EndianEngine
}

// NewEncoderConfig creates a configuration for a sorted, little-endian, uncompressed list.
func NewEncoderConfig() *EncoderConfig {
	header := section.NewHeader()

	return &EncoderConfig{
		header: header,
		codec:  compress.NewNoOpCompressor(),
		engine: header.Flag.GetEndianEngine(),
	}
}

// Ordering returns the configured ordering.
func (c *EncoderConfig) Ordering() format.Ordering {
	return c.header.Flag.Ordering()
}

// Compression returns the configured payload compression.
func (c *EncoderConfig) Compression() format.CompressionType {
	return c.header.Flag.CompressionType()
}

func (c *EncoderConfig) setOrdering(ordering format.Ordering) error {
	if !ordering.IsValid() {
		return fmt.Errorf("invalid ordering: %s", ordering)
	}

	c.header.Flag.SetOrdering(ordering)

	return nil
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	codec, err := compress.CreateCodec(comp, "payload")
	if err != nil {
		return err
	}

	c.header.Flag.SetCompressionType(comp)
	c.codec = codec

	return nil
}

func (c *EncoderConfig) setEndianness(opt endianness) {
	switch opt {
	case bigEndianOpt:
		c.header.Flag.WithBigEndian()
	default:
		c.header.Flag.WithLittleEndian()
	}

	c.engine = c.header.Flag.GetEndianEngine()
}

// endianness represents the byte order configuration option.
type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// EncoderOption represents a functional option for configuring the EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithSorted stores values as deltas of a non-decreasing list. It is the default.
func WithSorted() EncoderOption {
	return WithOrdering(format.OrderSorted)
}

// WithUnsorted stores values directly, in any order.
func WithUnsorted() EncoderOption {
	return WithOrdering(format.OrderUnsorted)
}

// WithOrdering sets the ordering of the encoded list.
func WithOrdering(ordering format.Ordering) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setOrdering(ordering)
	})
}

// WithCompression sets the payload compression applied after block encoding.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}

// WithLittleEndian writes header fields and skip index entries little-endian.
// It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianness(littleEndianOpt)
	})
}

// WithBigEndian writes header fields and skip index entries big-endian.
// Block payloads are unaffected.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianness(bigEndianOpt)
	})
}
