package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"issuewiz.app/advisor/core/config"
)

var _ = Describe("Load", func() {
	BeforeEach(func() {
		// Production mode skips .env discovery so the test only sees what it sets.
		GinkgoT().Setenv("ADVISOR_ENV", "production")
		for _, key := range []string{
			"OPENAI_API_KEY", "LLM_TIMEOUT", "ANALYSIS_LLM_MODEL", "MENTOR_LLM_TEMPERATURE",
			"SUGGEST_LLM_MAX_TOKENS", "CORS_ORIGINS", "FETCH_MAX_PARALLEL", "REDIS_URL",
		} {
			if _, ok := os.LookupEnv(key); ok {
				GinkgoT().Setenv(key, "")
				Expect(os.Unsetenv(key)).To(Succeed())
			}
		}
	})

	It("applies per-flow defaults", func() {
		cfg, err := config.Load()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.IsProduction()).To(BeTrue())
		Expect(cfg.LLM.Enabled()).To(BeFalse())
		Expect(cfg.LLM.Analysis).To(Equal(config.FlowConfig{Model: "gpt-3.5-turbo-16k", Temperature: 0.7, MaxTokens: 2000}))
		Expect(cfg.LLM.Suggest).To(Equal(config.FlowConfig{Model: "gpt-3.5-turbo", Temperature: 0.7, MaxTokens: 600}))
		Expect(cfg.LLM.Mentor).To(Equal(config.FlowConfig{Model: "gpt-3.5-turbo", Temperature: 0.8, MaxTokens: 500}))
		Expect(cfg.LLM.Timeout).To(Equal(60 * time.Second))
		Expect(cfg.Fetch.Timeout).To(Equal(5 * time.Second))
		Expect(cfg.Fetch.MaxParallel).To(Equal(3))
		Expect(cfg.Fetch.CacheEnabled()).To(BeFalse())
		Expect(cfg.CORSOrigins).To(Equal([]string{"http://localhost:3000"}))
	})

	It("reads overrides from the environment", func() {
		GinkgoT().Setenv("OPENAI_API_KEY", "sk-test")
		GinkgoT().Setenv("LLM_TIMEOUT", "15s")
		GinkgoT().Setenv("ANALYSIS_LLM_MODEL", "gpt-4o-mini")
		GinkgoT().Setenv("MENTOR_LLM_TEMPERATURE", "0.2")
		GinkgoT().Setenv("SUGGEST_LLM_MAX_TOKENS", "900")
		GinkgoT().Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
		GinkgoT().Setenv("REDIS_URL", "redis://localhost:6379/0")

		cfg, err := config.Load()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.Enabled()).To(BeTrue())
		Expect(cfg.LLM.Timeout).To(Equal(15 * time.Second))
		Expect(cfg.LLM.Analysis.Model).To(Equal("gpt-4o-mini"))
		Expect(cfg.LLM.Analysis.MaxTokens).To(Equal(2000))
		Expect(cfg.LLM.Mentor.Temperature).To(Equal(0.2))
		Expect(cfg.LLM.Suggest.MaxTokens).To(Equal(900))
		Expect(cfg.CORSOrigins).To(ConsistOf("https://a.example", "https://b.example"))
		Expect(cfg.Fetch.CacheEnabled()).To(BeTrue())
	})

	It("rejects a non-positive fetch parallelism", func() {
		GinkgoT().Setenv("FETCH_MAX_PARALLEL", "0")

		_, err := config.Load()

		Expect(err).To(MatchError(ContainSubstring("FETCH_MAX_PARALLEL")))
	})
})
