package metadata

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// RegionList holds the deployment regions of a function. A configuration may
// declare either an explicit list of region names or one of the placement
// keywords "all", "default" or "auto"; a keyword decodes to a single-element
// list.
type RegionList []string

// FunctionConfig is the typed view of a merged configuration mapping,
// covering the fields of the base schema. Zero values mean the field was not
// declared; extra keys in the mapping are ignored here.
type FunctionConfig struct {
	Runtime     string     `mapstructure:"runtime"`
	Memory      float64    `mapstructure:"memory"`
	MaxDuration float64    `mapstructure:"maxDuration"`
	Regions     RegionList `mapstructure:"regions"`
}

// Decode builds a FunctionConfig from a plain configuration mapping as
// produced by the extractor. Numeric values may be int64 or float64.
func Decode(m map[string]any) (*FunctionConfig, error) {
	var cfg FunctionConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &cfg,
		DecodeHook: regionKeywordHook,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}

var regionListType = reflect.TypeOf(RegionList(nil))

// regionKeywordHook turns a bare region keyword into a single-element
// RegionList so both declaration forms decode into the same field.
func regionKeywordHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == regionListType {
		return RegionList{data.(string)}, nil
	}
	return data, nil
}
