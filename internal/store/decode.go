package store

import (
	"errors"

	"github.com/initium-labs/initium/internal/schema"
	"github.com/initium-labs/initium/internal/setup"
)

// decode validates a JSON document against the config schema and builds a
// Config from it. Every failure is a *setup.MalformedConfigError naming source.
func decode(source string, data []byte) (*setup.Config, error) {
	res, err := schema.Validate(schema.Config, data)
	if err != nil {
		return nil, &setup.MalformedConfigError{Source: source, Err: err}
	}
	if !res.Valid {
		return nil, &setup.MalformedConfigError{Source: source, Issues: res.Messages()}
	}

	cfg, err := setup.Unmarshal(data)
	if err != nil {
		var mce *setup.MalformedConfigError
		if errors.As(err, &mce) {
			mce.Source = source
		}
		return nil, err
	}
	return cfg, nil
}
