package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/lineup/internal/adapters/repository"
	app "github.com/okian/lineup/internal/app"
	"github.com/okian/lineup/internal/config"
	"github.com/okian/lineup/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func TestNewStore(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When the memory store is selected", func() {
			store, err := newStore(cfg)

			convey.Convey("Then an in-memory store is built", func() {
				convey.So(err, convey.ShouldBeNil)
				_, ok := store.(*repository.MemoryStore)
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file store is selected", func() {
			cfg.Store = config.StoreFile
			cfg.DataDir = filepath.Join(t.TempDir(), "sessions")
			store, err := newStore(cfg)

			convey.Convey("Then the data directory is created", func() {
				convey.So(err, convey.ShouldBeNil)
				_, ok := store.(*repository.FileStore)
				convey.So(ok, convey.ShouldBeTrue)
				info, statErr := os.Stat(cfg.DataDir)
				convey.So(statErr, convey.ShouldBeNil)
				convey.So(info.IsDir(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithShuffleSeed(1))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		mux := newMux(ctx, svc)

		convey.Convey("Then docs and business routes are mounted", func() {
			for _, path := range []string{"/healthz", "/stats", "/formations", "/openapi.yaml", "/api-docs"} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusCreated)
		})
	})
}

func TestRun(t *testing.T) {
	t.Run("invalid store", func(t *testing.T) {
		convey.Convey("Given an unknown store kind", t, func() {
			t.Setenv("LINEUP_STORE", "s3")

			convey.Convey("Then run fails before serving", func() {
				err := run(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "store")
			})
		})
	})

	t.Run("cancelled context", func(t *testing.T) {
		convey.Convey("Given a context that is already cancelled", t, func() {
			t.Setenv("LINEUP_STORE", config.StoreMemory)
			t.Setenv("LINEUP_ADDR", "127.0.0.1:0")
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			convey.Convey("Then run shuts down cleanly", func() {
				convey.So(run(ctx), convey.ShouldBeNil)
			})
		})
	})
}
