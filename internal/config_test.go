package internal_test

import (
	"time"

	"github.com/frahmantamala/payroll-report/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() internal.Config {
	return internal.Config{
		Env: "development",
		Server: internal.ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       time.Minute,
		},
		Source:   internal.SourceConfig{Kind: internal.SourceFile, Path: "lib/data/employee_data.json"},
		Database: internal.DatabaseConfig{Driver: internal.DriverSQLite, Source: "payroll.db", MaxOpenConns: 5, MaxIdleConns: 2},
		Export:   internal.ExportConfig{Path: "salaries_export.csv", Format: internal.FormatCSV},
		Payroll:  internal.PayrollConfig{NegativeValues: internal.NegativeReject},
		Cache:    internal.CacheConfig{Size: 16, TTL: 10 * time.Minute},
		Logging:  internal.LoggingConfig{Level: "info", Format: "text"},
	}
}

var _ = Describe("Config", func() {
	var cfg internal.Config

	BeforeEach(func() {
		cfg = validConfig()
	})

	It("should accept a complete configuration", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should accept YAML sources", func() {
		cfg.Source.Path = "employees.yml"
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should reject an unsupported source extension", func() {
		cfg.Source.Path = "employees.xml"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("unsupported source file extension")))
	})

	It("should check the database only for database sources", func() {
		cfg.Database.Driver = "oracle"
		Expect(cfg.Validate()).To(Succeed())

		cfg.Source.Kind = internal.SourceDatabase
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("unknown driver")))
	})

	It("should reject an unknown negative value policy", func() {
		cfg.Payroll.NegativeValues = "clamp"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("negative_values")))
	})

	It("should reject an unknown export format", func() {
		cfg.Export.Format = "pdf"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("export config")))
	})

	It("should report every invalid section at once", func() {
		cfg.Server.Port = 0
		cfg.Cache.Size = 0
		cfg.Logging.Level = "verbose"

		err := cfg.Validate()
		Expect(err).To(MatchError(ContainSubstring("server config")))
		Expect(err).To(MatchError(ContainSubstring("cache config")))
		Expect(err).To(MatchError(ContainSubstring("logging config")))
	})

	It("should provide a default for every section", func() {
		for _, key := range []string{"source.path", "export.path", "payroll.negative_values", "cache.size", "http_server.port"} {
			Expect(internal.Defaults).To(HaveKey(key))
		}
	})

	Describe("LoadConfigFromEnv", func() {
		It("should read overrides from the environment", func() {
			GinkgoT().Setenv("HTTP_PORT", "9090")
			GinkgoT().Setenv("CACHE_TTL", "1m")

			loaded := internal.LoadConfigFromEnv()
			Expect(loaded.Server.Port).To(Equal(9090))
			Expect(loaded.Cache.TTL).To(Equal(time.Minute))
		})
	})
})
