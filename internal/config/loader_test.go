package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/carprice/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"CARPRICE_CONFIG",
	"CARPRICE_ADDR",
	"CARPRICE_LOG_LEVEL",
	"CARPRICE_LOG_FORMAT",
	"CARPRICE_MODEL_SOURCE",
	"CARPRICE_MODEL_PATH",
	"CARPRICE_S3_BUCKET",
	"CARPRICE_S3_KEY",
	"CARPRICE_S3_REGION",
	"CARPRICE_REFERENCE_YEAR",
}

func clearConfigEnvVars() {
	for _, name := range configEnvVars {
		_ = os.Unsetenv(name)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.ModelSource, convey.ShouldEqual, "file")
				convey.So(cfg.ModelPath, convey.ShouldEqual, "car_prediction_model.msgpack")
				convey.So(cfg.ReferenceYear, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CARPRICE_ADDR", ":8080")
			_ = os.Setenv("CARPRICE_MODEL_PATH", "/models/cars.msgpack")
			_ = os.Setenv("CARPRICE_REFERENCE_YEAR", "2026")
			_ = os.Setenv("CARPRICE_LOG_FORMAT", "json")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ModelPath, convey.ShouldEqual, "/models/cars.msgpack")
				convey.So(cfg.ReferenceYear, convey.ShouldEqual, 2026)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := createTempConfigFile(t, `
addr: ":9090"
model_source: s3
s3_bucket: models
s3_key: cars/v3.msgpack
s3_region: ap-south-1
reference_year: 2025
`)
			_ = os.Setenv("CARPRICE_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ModelSource, convey.ShouldEqual, config.SourceS3)
				convey.So(cfg.S3Bucket, convey.ShouldEqual, "models")
				convey.So(cfg.S3Key, convey.ShouldEqual, "cars/v3.msgpack")
				convey.So(cfg.S3Region, convey.ShouldEqual, "ap-south-1")
				convey.So(cfg.ReferenceYear, convey.ShouldEqual, 2025)
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			path := createTempConfigFile(t, `
addr: ":9090"
reference_year: 2025
`)
			_ = os.Setenv("CARPRICE_CONFIG", path)
			_ = os.Setenv("CARPRICE_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ReferenceYear, convey.ShouldEqual, 2025)
				convey.So(cfg.ModelPath, convey.ShouldEqual, "car_prediction_model.msgpack")
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			path := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("CARPRICE_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			_ = os.Setenv("CARPRICE_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When addr is empty", func() {
			_ = os.Setenv("CARPRICE_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the s3 source has no bucket", func() {
			_ = os.Setenv("CARPRICE_MODEL_SOURCE", "s3")

			_, err := config.Load(ctx)

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "s3_bucket")
			})
		})

		convey.Convey("When the model source is unknown", func() {
			_ = os.Setenv("CARPRICE_MODEL_SOURCE", "ftp")

			_, err := config.Load(ctx)

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the reference year is negative", func() {
			_ = os.Setenv("CARPRICE_REFERENCE_YEAR", "-1")

			_, err := config.Load(ctx)

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the reference year is not a number", func() {
			_ = os.Setenv("CARPRICE_REFERENCE_YEAR", "next-year")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
