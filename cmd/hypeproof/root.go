package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/jayleekr/hypeprooflab/internal/agent"
	"github.com/jayleekr/hypeprooflab/internal/agents"
	"github.com/jayleekr/hypeprooflab/internal/config"
	"github.com/jayleekr/hypeprooflab/internal/home"
	"github.com/jayleekr/hypeprooflab/internal/logging"
	"github.com/jayleekr/hypeprooflab/internal/metrics"
	"github.com/jayleekr/hypeprooflab/internal/prompts"
	"github.com/jayleekr/hypeprooflab/internal/providers"
	"github.com/jayleekr/hypeprooflab/internal/registry"
	"github.com/jayleekr/hypeprooflab/internal/skills"
	"github.com/jayleekr/hypeprooflab/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	providerName string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "hypeproof",
	Short: "Multi-agent content production pipeline",
	Long: `HypeProof Lab runs specialized LLM agents that research topics,
analyze the findings, and draft polished content.

The pipeline includes:
  - A research agent that gathers findings with cited sources
  - An analysis agent that synthesizes themes, patterns, and insights
  - A writing agent that produces articles, podcast scripts, or docs
  - Configurable skills that chain agents into full workflows`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.hypeproof/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "hypeproof home directory (default: ~/.hypeproof)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&providerName, "provider", "", "LLM provider to use (default: from config)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(produceCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(configCmd)
}

// App bundles the wired application services commands run against.
type App struct {
	Home      *home.Dir
	Config    *config.Manager
	Providers *providers.Registry
	Prompts   *prompts.Resolver
	Agents    *registry.Registry
	AgentCfgs []config.AgentCfg
	SkillCfgs []config.SkillCfg
	Skills    *skills.Runner
	Metrics   *metrics.Recorder
	Provider  string
	Logger    *slog.Logger
}

// newApp wires configuration, providers, agents, and skills together.
// Commands call this lazily so lightweight commands (version, config
// init) never pay for or fail on full initialization.
func newApp() (*App, error) {
	dir, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}

	resolvedCfgFile := cfgFile
	if resolvedCfgFile == "" && dir.ConfigExists() {
		resolvedCfgFile = dir.ConfigPath()
	}

	cfgManager, err := config.NewManager(resolvedCfgFile)
	if err != nil {
		return nil, err
	}
	cfg := cfgManager.Get()

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	logger := logging.New(os.Stderr, logLevel, cfg.Logging.Format)
	slog.SetDefault(logger)

	providerReg := providers.NewRegistryFromConfig(cfg.ToProviderRegistryConfig())
	providerReg.SetLogger(logger)

	// Providers follow config file edits without a restart.
	cfgManager.OnChange(func(updated *config.Config) {
		providerReg.Reload(updated.ToProviderRegistryConfig())
	})
	cfgManager.WatchConfig()

	resolver := prompts.NewResolver(dir.PromptsDir(), logger)
	agents.RegisterPrompts(resolver)

	agentCfgs := config.ApplyAgentDefaults(config.DefaultAgents(), cfg.Defaults)
	if dir.AgentsExists() {
		agentCfgs, err = config.LoadAgents(dir.AgentsPath(), cfg.Defaults)
		if err != nil {
			return nil, err
		}
	}

	skillCfgs := config.DefaultSkills()
	if dir.SkillsExists() {
		skillCfgs, err = config.LoadSkills(dir.SkillsPath())
		if err != nil {
			return nil, err
		}
	}

	provider := providerName
	if provider == "" {
		provider = cfg.Defaults.LLMProvider
	}

	agentReg := registry.New(logger)
	if err := agents.RegisterAll(agentReg, agentCfgs, agents.Deps{
		Providers: providerReg,
		Resolver:  resolver,
		Provider:  provider,
		Logger:    logger,
	}); err != nil {
		return nil, err
	}

	var metricsPath string
	if dir.Exists() {
		metricsPath = dir.MetricsPath()
	}

	return &App{
		Home:      dir,
		Config:    cfgManager,
		Providers: providerReg,
		Prompts:   resolver,
		Agents:    agentReg,
		AgentCfgs: agentCfgs,
		SkillCfgs: skillCfgs,
		Skills:    skills.NewRunner(agentReg, logger),
		Metrics:   metrics.NewRecorder(metricsPath),
		Provider:  provider,
		Logger:    logger,
	}, nil
}

// envVarPattern extracts the variable name from an ${ENV_VAR} reference.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// checkProvider verifies the selected provider is usable, pointing at
// the missing credential when it is not.
func (a *App) checkProvider() error {
	if a.Providers.Has(a.Provider) {
		return nil
	}

	cfg := a.Config.Get()
	if provCfg, ok := cfg.GetLLMProvider(a.Provider); ok {
		if m := envVarPattern.FindStringSubmatch(provCfg.APIKey); m != nil {
			return fmt.Errorf("provider %q is not available: set the %s environment variable", a.Provider, m[1])
		}
		if !provCfg.Enabled {
			return fmt.Errorf("provider %q is disabled in config", a.Provider)
		}
	}
	return fmt.Errorf("provider %q is not configured", a.Provider)
}

// outputResult prints the agent result and maps a failed run onto the
// command's error return so the process exits non-zero.
func outputResult(result *agent.Result) error {
	if err := output(result); err != nil {
		return err
	}
	return runError(result.Ok(), result.ErrorMessage)
}

// runError converts a failed run into a command error.
func runError(ok bool, msg string) error {
	if ok {
		return nil
	}
	if msg == "" {
		msg = "run failed"
	}
	return errors.New(msg)
}

// logUsage emits a token and cost footer for the completed run.
func logUsage(app *App) {
	s := app.Metrics.Summarize()
	app.Logger.Info("usage summary",
		"runs", s.Runs,
		"total_tokens", s.TotalTokens,
		"cost_usd", s.CostUSD,
		"execution_seconds", s.ExecutionSeconds,
	)
}

// recordResult appends run metrics, logging rather than failing the
// command when the metrics file is unavailable.
func recordResult(app *App, agentName string, result *agent.Result) {
	opts := metrics.RecordOpts{Provider: app.Provider}
	if err := app.Metrics.RecordAgentResult(opts, agentName, result); err != nil {
		app.Logger.Warn("failed to record metrics", "agent", agentName, "error", err)
	}
}

// loadDataFile reads a JSON file into the shared data map under key.
func loadDataFile(data map[string]any, key, path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// Not JSON, pass the file through as text.
		data[key] = string(raw)
		return nil
	}
	data[key] = parsed
	return nil
}

// findSkill returns the configured skill by name.
func (a *App) findSkill(name string) (config.SkillCfg, error) {
	for _, s := range a.SkillCfgs {
		if s.Name == name {
			return s, nil
		}
	}
	return config.SkillCfg{}, fmt.Errorf("unknown skill %q", name)
}
