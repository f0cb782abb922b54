package settings

import (
	"context"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// MapSource serves settings from memory.
type MapSource map[string]any

func (m MapSource) Lookup(_ context.Context, keys []string) (map[string]any, error) {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			out[k] = v
		}
	}
	return out, nil
}

// ViperSource reads settings from the "settings" section of a viper
// configuration, so they can come from the config file or HONYAKU_SETTINGS_*
// environment variables.
type ViperSource struct {
	v *viper.Viper
}

// NewViperSource wraps v.
func NewViperSource(v *viper.Viper) *ViperSource {
	return &ViperSource{v: v}
}

func (s *ViperSource) Lookup(_ context.Context, keys []string) (map[string]any, error) {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		path := "settings." + k
		if !s.v.IsSet(path) {
			continue
		}
		out[k] = s.v.Get(path)
	}
	return out, nil
}

type chain []Source

// Chain combines sources. For each key the first source holding a non-empty
// value wins.
func Chain(sources ...Source) Source {
	return chain(sources)
}

func (c chain) Lookup(ctx context.Context, keys []string) (map[string]any, error) {
	out := make(map[string]any, len(keys))
	for _, src := range c {
		pending := missing(keys, out)
		if len(pending) == 0 {
			break
		}
		values, err := src.Lookup(ctx, pending)
		if err != nil {
			return nil, err
		}
		for k, v := range values {
			if cast.ToString(v) == "" {
				continue
			}
			out[k] = v
		}
	}
	return out, nil
}

func missing(keys []string, found map[string]any) []string {
	var pending []string
	for _, k := range keys {
		if _, ok := found[k]; !ok {
			pending = append(pending, k)
		}
	}
	return pending
}
