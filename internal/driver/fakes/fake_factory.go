package fakes

import (
	"context"

	"github.com/debmagic/debmagic/internal/build"
)

// FakeFactory hands out Driver, configured for the requested build.
type FakeFactory struct {
	Driver *FakeDriver
	NewErr error

	NewCalls          []build.Config
	FromMetadataCalls []build.Metadata
}

func (f *FakeFactory) New(_ context.Context, kind build.DriverType, config build.Config) (build.Driver, error) {
	f.NewCalls = append(f.NewCalls, config)
	if f.NewErr != nil {
		return nil, f.NewErr
	}
	f.Driver.Kind = kind
	f.Driver.Config = config
	return f.Driver, nil
}

func (f *FakeFactory) FromMetadata(md build.Metadata) (build.Driver, error) {
	f.FromMetadataCalls = append(f.FromMetadataCalls, md)
	if f.NewErr != nil {
		return nil, f.NewErr
	}
	f.Driver.Kind = md.Driver
	f.Driver.Config = md.Config
	f.Driver.DriverMetadata = md.DriverMetadata
	return f.Driver, nil
}
