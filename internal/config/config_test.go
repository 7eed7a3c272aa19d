package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/boardlens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.TopCategories, convey.ShouldEqual, 10)
			convey.So(cfg.FilterQueueSize, convey.ShouldEqual, 64)
			convey.So(cfg.DefaultCategories, convey.ShouldContain, "Fantasy")
			convey.So(cfg.ShutdownTimeout, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid settings", t, func() {
		cases := []func(*config.Config){
			func(c *config.Config) { c.Addr = "" },
			func(c *config.Config) { c.LogFormat = "xml" },
			func(c *config.Config) { c.TopCategories = 0 },
			func(c *config.Config) { c.FilterQueueSize = -1 },
			func(c *config.Config) { c.MaxRecords = -1 },
			func(c *config.Config) { c.ShutdownTimeout = 0 },
		}

		convey.Convey("Then each is rejected as invalid config", func() {
			for _, mutate := range cases {
				cfg := config.New(context.Background())
				mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})
	})
}
