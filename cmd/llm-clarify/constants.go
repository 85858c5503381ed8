package llmclarify

const (
	applicationName                = "llm-clarify"
	rootCommandShort               = "Clarify a research query with follow-up questions before deep research"
	defaultConfigPath              = "./config.yaml"
	runCommandUse                  = "run [QUERY]"
	runCommandShort                = "Ask clarifying questions and hand the combined query to research"
	runCommandArgsMax              = 1
	modelsCommandUse               = "models"
	modelsCommandShort             = "List models from config.yaml"
	configFlagName                 = "config"
	configFlagUsage                = "Path to config.yaml"
	queryFlagName                  = "query"
	queryFlagUsage                 = "Research query (prompted for when omitted)"
	maxQuestionsFlagName           = "max-questions"
	maxQuestionsFlagUsage          = "Maximum clarifying questions to ask (0 = ask nothing)"
	breadthFlagName                = "breadth"
	breadthFlagUsage               = "Research breadth forwarded to the research component"
	depthFlagName                  = "depth"
	depthFlagUsage                 = "Research depth forwarded to the research component"
	attemptsFlagName               = "attempts"
	attemptsFlagUsage              = "Max question generation attempts (0 = use defaults)"
	timeoutFlagName                = "timeout"
	timeoutFlagUsage               = "Per-attempt timeout (e.g., 45s; 0 = use defaults)"
	modelFlagName                  = "model"
	modelFlagUsage                 = "Override the default model by name (must exist in models[])"
	handoffFlagName                = "handoff"
	handoffFlagUsage               = "Handoff mode: print or file"
	outputFlagName                 = "output"
	outputFlagUsage                = "Output path for the file handoff"
	queryPrompt                    = "What would you like to research? "
	defaultMarker                  = "*"
	dashPlaceholder                = "-"
	consoleLoggingFormat           = "console"
	configurationLoaderInitError   = "initialize configuration loader: %w"
	configurationSourceError       = "resolve configuration source: %w"
	rootConfigurationLoadError     = "load root configuration %s: %w"
	missingAPIKeyErrorFormat       = "missing API key: set %s"
	unknownModelErrorFormat        = "model %q not found in models[]"
	unknownHandoffErrorFormat      = "unknown handoff mode %q (available: %s)"
	emptyQueryErrorMessage         = "research query is empty"
	readQueryErrorFormat           = "read research query: %w"
	invalidLoggingLevelErrorFormat = "invalid logging level %q: %w"
)
