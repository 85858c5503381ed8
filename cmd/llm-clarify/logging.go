package llmclarify

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/llm-clarify/internal/config"
)

// newLogger writes to the command's error stream so log lines never interleave with prompts on stdout.
func newLogger(root config.Root, destination io.Writer) (*zap.Logger, error) {
	levelName := strings.TrimSpace(root.Common.Logging.Level)
	if levelName == "" {
		levelName = zapcore.InfoLevel.String()
	}
	level, err := zap.ParseAtomicLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf(invalidLoggingLevelErrorFormat, levelName, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if strings.EqualFold(strings.TrimSpace(root.Common.Logging.Format), consoleLoggingFormat) {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(destination), level)
	return zap.New(core).Named(applicationName), nil
}
