package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/lineup/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.DefaultFormation, convey.ShouldEqual, "4-3-3")
			convey.So(cfg.DefaultEliteQuarter, convey.ShouldEqual, -1)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad field", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
			{"unknown store", func(c *config.Config) { c.Store = "redis" }},
			{"file without dir", func(c *config.Config) { c.Store = config.StoreFile; c.DataDir = "" }},
			{"log format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"formation", func(c *config.Config) { c.DefaultFormation = "2-2-2" }},
			{"elite quarter", func(c *config.Config) { c.DefaultEliteQuarter = 4 }},
		}

		for _, tc := range cases {
			cfg := config.New(context.Background())
			tc.mutate(cfg)

			convey.Convey("Then "+tc.name+" is rejected", func() {
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
