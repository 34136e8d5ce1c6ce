// SPDX-License-Identifier: ice License 1.0

package config

import (
	"sync"

	"github.com/spf13/viper"
)

// Public API.

const (
	ApplicationYAMLFileName = "application.yaml"
)

// Private API.

const (
	dotEnvFileName       = ".env"
	dotEnvParentsToProbe = 5
	testdataDirName      = ".testdata"
)

// .
var (
	//nolint:gochecknoglobals // The application config is loaded once per process.
	loader = &applicationConfig{cfg: viper.New()}
)

type (
	applicationConfig struct {
		cfg      *viper.Viper
		loadErr  error
		source   string
		loadOnce sync.Once
	}
)
