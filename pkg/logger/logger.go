package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SNS-EUGENE/s-live-dashboard/config"
)

// 예약 시각과 같은 기준으로 읽히도록 로그 시각도 KST 로 찍는다
var kst = time.FixedZone("KST", 9*60*60)

func kstTimeEncoder(layout string) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(kst).Format(layout))
	}
}

// NewLogger 설정에 따라 Zap 로거를 만든다
// console 은 사람이 읽는 CLI 출력용, 그 외는 JSON
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = kstTimeEncoder("15:04:05")
		zapCfg.DisableStacktrace = true
	default:
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = kstTimeEncoder("2006-01-02T15:04:05.000Z07:00")
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("잘못된 로그 레벨 %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("로거 초기화 실패: %w", err)
	}

	return logger.With(zap.String("service", "slive-studio")), nil
}
