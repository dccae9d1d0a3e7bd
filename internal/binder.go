package internal

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// decodeArgs decodes keyword arguments into the struct pointed to by out.
// Input is weakly typed: form and query strings convert to numbers, bools,
// durations, RFC 3339 times and comma separated slices.
func decodeArgs(kw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          paramTag,
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(kw)
}
