package opts

import (
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.PatchrcConfig
	Console *log.Logger
}

// TODO(dr.methodical): 📝 Add examples of option usage
