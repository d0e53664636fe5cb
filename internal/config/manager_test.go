package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medialens/collector/internal/config"
	"github.com/medialens/collector/internal/models"
	"github.com/medialens/collector/internal/store"
	"github.com/medialens/collector/internal/store/migrations"
	srvErrors "github.com/medialens/collector/pkg/errors"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

// noEnv keeps the real process environment out of the resolution chain.
func noEnv() []string { return nil }

func env(entries ...string) func() []string {
	return func() []string { return entries }
}

func writeConfigFile(dir, name, content string) {
	GinkgoHelper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	Expect(err).NotTo(HaveOccurred())
}

// failingSettings simulates an unreachable settings database.
type failingSettings struct{}

func (failingSettings) ActiveSettings(context.Context) ([]models.Setting, error) {
	return nil, errors.New("connection refused")
}

var _ = Describe("Manager", func() {
	var (
		ctx context.Context
		dir string
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
	})

	Context("Defaults", func() {
		// Given no files, no database and no environment overrides
		// When we load and resolve keys
		// Then compiled-in defaults should answer known keys and the caller
		// default should answer unknown ones
		It("should fall back to compiled-in defaults and caller defaults", func() {
			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(filepath.Join(dir, "does-not-exist")),
				config.WithEnviron(noEnv),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())

			port, err := cfg.GetInt("server.port", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(port).To(Equal(8000))

			Expect(cfg.Get("no.such.key", "fallback")).To(Equal("fallback"))

			missing, err := cfg.GetInt("no.such.int", 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(missing).To(Equal(8))
		})
	})

	Context("Files", func() {
		// Given a single JSON document
		// When we load
		// Then its leaves should override defaults while untouched defaults survive
		It("should overlay file values onto defaults key-wise", func() {
			// Arrange
			writeConfigFile(dir, "settings.json", `{
				"processing": {"parallel": {"batch_size": 200}},
				"keywords": {"default": ["breaking news", "politics"]}
			}`)

			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())

			batch, err := cfg.GetInt("processing.parallel.batch_size", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(batch).To(Equal(200))

			// Sibling leaf from defaults is untouched by the overlay.
			workers, err := cfg.GetInt("processing.parallel.max_collector_workers", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(workers).To(Equal(4))

			Expect(cfg.GetList("keywords.default", nil)).To(Equal([]string{"breaking news", "politics"}))
		})

		// Given two documents setting sibling leaves under the same branch
		// When we load
		// Then both leaves should be visible in the merged subtree
		It("should merge sibling leaves from multiple files", func() {
			// Arrange
			writeConfigFile(dir, "01_first.json", `{"a": {"b": {"x": 1}}}`)
			writeConfigFile(dir, "02_second.json", `{"a": {"b": {"y": 2}}}`)

			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GetDict("a.b", nil)).To(Equal(map[string]any{
				"x": float64(1),
				"y": float64(2),
			}))
		})

		// Given two documents setting the same leaf
		// When we load
		// Then the lexicographically later filename should win
		It("should apply files in lexicographic filename order", func() {
			// Arrange
			writeConfigFile(dir, "10_base.json", `{"server": {"mode": "dev"}}`)
			writeConfigFile(dir, "20_override.json", `{"server": {"mode": "prod"}}`)

			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Get("server.mode", "")).To(Equal("prod"))
		})

		// Given a document using the historical top-level layout
		// When we load
		// Then its keys should be visible under processing.parallel, with
		// explicitly nested keys winning over remapped ones
		It("should remap the legacy parallel_processing block", func() {
			// Arrange
			writeConfigFile(dir, "legacy.json", `{
				"parallel_processing": {"max_collector_workers": 16, "batch_size": 500},
				"processing": {"parallel": {"batch_size": 25}}
			}`)

			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())

			workers, err := cfg.GetInt("processing.parallel.max_collector_workers", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(workers).To(Equal(16))

			batch, err := cfg.GetInt("processing.parallel.batch_size", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(batch).To(Equal(25))
		})

		// Given one malformed document among valid ones
		// When we load
		// Then the whole load should abort with a malformed-source error
		It("should abort the load on malformed JSON", func() {
			// Arrange
			writeConfigFile(dir, "good.json", `{"server": {"port": 9000}}`)
			writeConfigFile(dir, "broken.json", `{"server": {`)

			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsMalformedSource(err)).To(BeTrue())
			Expect(cfg).To(BeNil())
		})
	})

	Context("Environment", func() {
		// Given overrides from files and environment
		// When we resolve the contested key
		// Then the environment should win
		It("should let environment variables override every other source", func() {
			// Arrange
			writeConfigFile(dir, "settings.json", `{"processing": {"timeout_seconds": 60}}`)

			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(env("CONFIG__PROCESSING__TIMEOUT_SECONDS=90")),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())

			timeout, err := cfg.GetInt("processing.timeout_seconds", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(timeout).To(Equal(90))
		})

		// Given numeric and boolean environment values
		// When we resolve them
		// Then they should come back typed, not as raw strings
		It("should parse environment scalars", func() {
			cfg, err := config.Load(ctx,
				config.WithConfigDir(filepath.Join(dir, "none")),
				config.WithEnviron(env(
					"CONFIG__SERVER__PORT=12",
					"CONFIG__COLLECTORS__ENABLED=TRUE",
					"CONFIG__PROCESSING__RATIO=0.5",
					"CONFIG__SERVER__MODE=prod",
				)),
			)
			Expect(err).NotTo(HaveOccurred())

			port, err := cfg.GetInt("server.port", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(port).To(Equal(12))

			enabled, err := cfg.GetBool("collectors.enabled", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(enabled).To(BeTrue())

			ratio, err := cfg.GetFloat("processing.ratio", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(ratio).To(Equal(0.5))

			Expect(cfg.Get("server.mode", "")).To(Equal("prod"))
		})

		// Given variables without the CONFIG__ prefix or with empty segments
		// When we load
		// Then they should be ignored
		It("should ignore non-matching environment variables", func() {
			cfg, err := config.Load(ctx,
				config.WithConfigDir(filepath.Join(dir, "none")),
				config.WithEnviron(env(
					"PATH=/usr/bin",
					"CONFIG____BROKEN=1",
					"CONFIGX__SERVER__PORT=1",
				)),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Get("server.port", 0)).To(Equal(8000))
			Expect(cfg.Get("x.server.port", "absent")).To(Equal("absent"))
		})
	})

	Context("Database", func() {
		var s *store.Store

		BeforeEach(func() {
			db, err := store.NewDB(":memory:")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(func() { db.Close() })

			err = migrations.Run(ctx, db)
			Expect(err).NotTo(HaveOccurred())

			s = store.NewStore(db)
		})

		// Given active and inactive settings rows
		// When we load with the database source enabled
		// Then only active rows should contribute to the tree
		It("should merge active rows and ignore inactive ones", func() {
			// Arrange
			err := s.Settings().Save(ctx, models.Setting{
				Category: "processing",
				Key:      "parallel.max_collector_workers",
				Value:    "12",
				Type:     models.SettingTypeInt,
				Active:   true,
			})
			Expect(err).NotTo(HaveOccurred())

			err = s.Settings().Save(ctx, models.Setting{
				Category: "server",
				Key:      "port",
				Value:    "9999",
				Type:     models.SettingTypeInt,
				Active:   false,
			})
			Expect(err).NotTo(HaveOccurred())

			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(filepath.Join(dir, "none")),
				config.WithDatabase(s.Settings()),
				config.WithEnviron(noEnv),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())

			workers, err := cfg.GetInt("processing.parallel.max_collector_workers", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(workers).To(Equal(12))

			port, err := cfg.GetInt("server.port", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(port).To(Equal(8000))
		})

		// Given a database row and an environment override for the same key
		// When we load
		// Then the environment should still win
		It("should rank database rows below the environment", func() {
			// Arrange
			err := s.Settings().Save(ctx, models.Setting{
				Category: "server",
				Key:      "port",
				Value:    "9000",
				Type:     models.SettingTypeInt,
				Active:   true,
			})
			Expect(err).NotTo(HaveOccurred())

			// Act
			cfg, err := config.Load(ctx,
				config.WithConfigDir(filepath.Join(dir, "none")),
				config.WithDatabase(s.Settings()),
				config.WithEnviron(env("CONFIG__SERVER__PORT=7777")),
			)

			// Assert
			Expect(err).NotTo(HaveOccurred())

			port, err := cfg.GetInt("server.port", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(port).To(Equal(7777))
		})

		// Given an unreachable settings database
		// When we load with the database source enabled
		// Then the load should fail instead of silently degrading to files
		It("should fail the load when the database is unreachable", func() {
			cfg, err := config.Load(ctx,
				config.WithConfigDir(filepath.Join(dir, "none")),
				config.WithDatabase(failingSettings{}),
				config.WithDatabaseTimeout(200*time.Millisecond),
				config.WithEnviron(noEnv),
			)

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsDatabaseUnavailable(err)).To(BeTrue())
			Expect(cfg).To(BeNil())
		})
	})

	Context("Typed accessors", func() {
		var cfg *config.Manager

		BeforeEach(func() {
			writeConfigFile(dir, "settings.json", `{
				"collectors": {"twitter": {"label": "Twitter/X"}},
				"keywords": {"single": "Emir of Qatar"},
				"paths": {"base": "`+dir+`", "reports": "/var/reports"}
			}`)

			var err error
			cfg, err = config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)
			Expect(err).NotTo(HaveOccurred())
		})

		// Given a present but non-numeric value
		// When we coerce it to int
		// Then a type mismatch error should be returned, not the default
		It("should report a type mismatch for uncoercible values", func() {
			_, err := cfg.GetInt("collectors.twitter.label", 0)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsTypeMismatch(err)).To(BeTrue())
		})

		// Given a scalar stored where a list is expected
		// When we resolve it as a list
		// Then it should come back as a singleton
		It("should wrap a scalar into a singleton list", func() {
			Expect(cfg.GetList("keywords.single", nil)).To(Equal([]string{"Emir of Qatar"}))
		})

		It("should return the caller default for an absent list", func() {
			Expect(cfg.GetList("keywords.absent", []string{"x"})).To(Equal([]string{"x"}))
		})

		It("should return a subtree as a plain map", func() {
			Expect(cfg.GetDict("collectors.twitter", nil)).To(Equal(map[string]any{
				"label": "Twitter/X",
			}))
		})

		// Given relative and absolute configured paths
		// When we resolve them
		// Then relative ones join the base path and absolute ones pass through
		It("should anchor relative paths at the base path", func() {
			raw, err := cfg.GetPath("paths.data_raw", "data/raw")
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(Equal(filepath.Join(dir, "data", "raw")))

			reports, err := cfg.GetPath("paths.reports", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(Equal("/var/reports"))

			Expect(cfg.BasePath()).To(Equal(dir))
		})
	})

	Context("Reload", func() {
		// Given a loaded manager whose source file then changes
		// When we reload
		// Then the new value should be served
		It("should pick up changed sources", func() {
			// Arrange
			writeConfigFile(dir, "settings.json", `{"server": {"port": 9000}}`)
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)
			Expect(err).NotTo(HaveOccurred())

			// Act
			writeConfigFile(dir, "settings.json", `{"server": {"port": 9100}}`)
			err = cfg.Reload(ctx)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			port, err := cfg.GetInt("server.port", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(port).To(Equal(9100))
		})

		// Given a reload that fails mid-way
		// When readers keep resolving
		// Then the previous tree should stay published unchanged
		It("should keep serving the old tree when a reload fails", func() {
			// Arrange
			writeConfigFile(dir, "settings.json", `{"server": {"port": 9000}}`)
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)
			Expect(err).NotTo(HaveOccurred())

			// Act
			writeConfigFile(dir, "settings.json", `{"server": {`)
			err = cfg.Reload(ctx)

			// Assert
			Expect(err).To(HaveOccurred())
			port, err := cfg.GetInt("server.port", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(port).To(Equal(9000))
		})

		// Given readers racing with reloads
		// When both run concurrently
		// Then every read should observe a complete tree from one generation
		It("should serve consistent snapshots to concurrent readers", func() {
			// Arrange
			writeConfigFile(dir, "settings.json", `{"server": {"port": 9000, "mode": "dev"}}`)
			cfg, err := config.Load(ctx,
				config.WithConfigDir(dir),
				config.WithEnviron(noEnv),
			)
			Expect(err).NotTo(HaveOccurred())

			var wg sync.WaitGroup
			stop := make(chan struct{})
			bad := make(chan int, 1)

			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
					}
					port, err := cfg.GetInt("server.port", 0)
					if err != nil || (port != 9000 && port != 9100) {
						select {
						case bad <- port:
						default:
						}
						return
					}
				}
			}()

			// Act
			for i := 0; i < 20; i++ {
				port := 9000
				if i%2 == 1 {
					port = 9100
				}
				writeConfigFile(dir, "settings.json",
					`{"server": {"port": `+strconv.Itoa(port)+`, "mode": "dev"}}`)
				Expect(cfg.Reload(ctx)).To(Succeed())
			}
			close(stop)
			wg.Wait()

			// Assert
			Expect(bad).To(BeEmpty())
		})
	})
})
