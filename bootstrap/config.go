package bootstrap

import (
	"github.com/kbukum/rxfetch/config"
	"github.com/kbukum/rxfetch/logger"
)

// Config is the constraint for application configuration types.
// *config.AppConfig satisfies it.
type Config interface {
	GetBaseConfig() *config.BaseConfig
	GetLogging() *logger.Config
	ApplyDefaults()
	Validate() error
}
