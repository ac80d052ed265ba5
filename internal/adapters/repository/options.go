package repository

import (
	"golang.org/x/text/encoding"

	"github.com/okian/nsl/pkg/logger"
)

type options struct {
	logger   logger.Logger
	encoding encoding.Encoding
}

func defaultOptions() options {
	return options{logger: logger.Nop()}
}

// Option applies a configuration option to a store.
type Option func(*options)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEncoding decodes files from enc instead of UTF-8. Only reads are
// affected.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		if enc != nil {
			o.encoding = enc
		}
	}
}
