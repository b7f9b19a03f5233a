package opts

import (
	"github.com/walteh/patchpal/pkg/config"
	"github.com/walteh/patchpal/pkg/editor/backup"
	"github.com/walteh/patchpal/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Backups *backup.Store
	Console *log.Logger
}
