package tsgen

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Options configures compilation. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// Export adds the 'export' modifier to every declaration.
	Export bool

	// UnknownType renders unconstrained schema nodes.
	UnknownType string `validate:"omitempty,oneof=any unknown"`

	// FactoryPrefix forms factory function names from type names.
	FactoryPrefix string `validate:"omitempty,alpha"`

	// Frontmatter is written verbatim at the top of the output,
	// useful for custom type definitions or imports.
	Frontmatter string

	// EmitComments renders schema descriptions as JSDoc blocks.
	EmitComments bool
}

// DefaultOptions returns the standard compilation options.
func DefaultOptions() *Options {
	return &Options{
		Export:        true,
		UnknownType:   "any",
		FactoryPrefix: "make",
		EmitComments:  true,
	}
}

var optionsValidator = validator.New()

func (o *Options) validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
