package bootstrap

import (
	"github.com/kbukum/todoapi/config"
)

// Config is the constraint for application configuration types. Any struct
// that embeds config.ServiceConfig gets GetServiceConfig through promotion
// and only has to add ApplyDefaults and Validate for its own sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
