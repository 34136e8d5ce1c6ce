// SPDX-License-Identifier: ice License 1.0

package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// LoadFromKey decodes the section stored under key into cfg.
// A missing application.yaml is not an error: every section then decodes to its zero value.
func LoadFromKey(key string, cfg any) error {
	loader.loadOnce.Do(loader.load)
	if loader.loadErr != nil {
		return loader.loadErr
	}

	return errors.Wrapf(loader.cfg.UnmarshalKey(key, cfg), "failed to load config by key %q", key)
}

func MustLoadFromKey(key string, cfg any) {
	if err := LoadFromKey(key, cfg); err != nil {
		log.Panic(err)
	}
}

// Source returns the application.yaml the config was read from, if any.
func Source() string {
	loader.loadOnce.Do(loader.load)

	return loader.source
}

func (a *applicationConfig) load() {
	a.loadDotEnv()
	for _, f := range findAllApplicationConfigFiles() {
		a.cfg.SetConfigFile(f)
		err := a.cfg.ReadInConfig()
		if err == nil {
			a.source = f

			return
		}
		if !errors.Is(err, os.ErrNotExist) {
			a.loadErr = errors.Wrapf(err, "failed to read %v", f)

			return
		}
	}
	log.Println("no " + ApplicationYAMLFileName + " found, using defaults")
}

func (*applicationConfig) loadDotEnv() {
	dotEnvPath := dotEnvFileName
	for range dotEnvParentsToProbe {
		if err := godotenv.Load(dotEnvPath); err == nil {
			return
		}
		dotEnvPath = fmt.Sprintf(`../%v`, dotEnvPath)
	}
}

func findAllApplicationConfigFiles() []string {
	var hints []string
	if p, err := os.Getwd(); err == nil {
		hints = append(hints, p)
	}
	if p, err := os.Executable(); err == nil {
		hints = append(hints, path.Dir(filepath.Join(p, "..")))
	}

	files := make([]string, 0, 2*len(hints)+2) //nolint:mnd // Two patterns per hint, plus the relative ones.
	for _, dir := range hints {
		files = append(files, glob(filepath.Join(dir, testdataDirName, ApplicationYAMLFileName))...)
		files = append(files, glob(filepath.Join(dir, ApplicationYAMLFileName))...)
	}
	//nolint:dogsled // Because those 3 blank identifiers are useless
	_, callerFile, _, _ := runtime.Caller(0)
	files = append(files, glob(filepath.Join(filepath.Dir(callerFile), "..", ApplicationYAMLFileName))...)

	return files
}

func glob(pattern string) []string {
	files, err := filepath.Glob(pattern)
	if err != nil {
		log.Println(errors.Wrapf(err, "glob failed for [%v]", pattern))

		return nil
	}

	return files
}
