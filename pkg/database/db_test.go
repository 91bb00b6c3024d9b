package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestZapGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &zapGormLogger{logger: zap.New(core), level: gormlogger.Warn}
	fc := func() (string, int64) { return "SELECT 1", 1 }
	ctx := context.Background()

	l.Trace(ctx, time.Now(), fc, gorm.ErrRecordNotFound)
	l.Trace(ctx, time.Now(), fc, nil)
	if logs.Len() != 0 {
		t.Fatalf("없는 레코드·빠른 쿼리는 남기지 않음: %d건", logs.Len())
	}

	l.Trace(ctx, time.Now().Add(-time.Second), fc, nil)
	l.Trace(ctx, time.Now(), fc, errors.New("connection refused"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("기대 2건, 실제 %d건", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[1].Level != zapcore.ErrorLevel {
		t.Errorf("레벨: %v, %v", entries[0].Level, entries[1].Level)
	}
	if entries[1].ContextMap()["sql"] != "SELECT 1" {
		t.Errorf("SQL 포함: %v", entries[1].ContextMap())
	}
}

func TestZapGormLogger_Silent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := (&zapGormLogger{logger: zap.New(core), level: gormlogger.Warn}).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "", 0 }, errors.New("x"))
	l.Error(context.Background(), "무시 %d", 1)
	if logs.Len() != 0 {
		t.Errorf("Silent 는 아무것도 남기지 않음: %d건", logs.Len())
	}
}
