// Package validation checks configuration sections and request input.
//
// Struct tag validation covers the config structs loaded by viper:
//
//	type Pipelines struct {
//	    IDs []int `mapstructure:"ids" validate:"required,min=1,unique,dive,gt=0"`
//	}
//	err := validation.Validate(cfg.Pipelines)
//
// Programmatic validation collects errors for input that arrives as strings,
// such as HTTP path parameters:
//
//	v := validation.New()
//	id := v.PositiveInt("id", c.Param("id"))
//	if err := v.Validate(); err != nil { ... }
package validation
