package godprompt

import (
	"fmt"
	"strings"
)

// ScriptureSource maps a human readable scripture name to the vector store
// collection holding its passages. The set of sources is static configuration,
// not runtime state.
type ScriptureSource struct {
	Name       string `mapstructure:"name"`
	Collection string `mapstructure:"collection"`
}

func (s ScriptureSource) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("scripture source name is required")
	}
	if strings.TrimSpace(s.Collection) == "" {
		return fmt.Errorf("scripture source %q: collection is required", s.Name)
	}
	return nil
}

type ScriptureSources []ScriptureSource

func (ss ScriptureSources) Validate() error {
	if len(ss) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]struct{}, len(ss))
	for _, aSource := range ss {
		if err := aSource.Validate(); err != nil {
			return err
		}
		if _, ok := seen[aSource.Name]; ok {
			return fmt.Errorf("duplicate scripture source: %s", aSource.Name)
		}
		seen[aSource.Name] = struct{}{}
	}

	return nil
}
