package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(false, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  catalog  ", Value: "  skills  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	require.Len(t, fields, 1)
	assert.Equal(t, "catalog", fields[0].Key)
	assert.Equal(t, "skills", fields[0].String)
	assert.Empty(t, StringFields())
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	WithFields(l, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])

	fallback := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, fallback)
	fallback.Info("does not panic")
}

func TestNamedAndRequestFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := Named(zap.New(core), "matching")
	l.Info("hello", RequestFields("abc", "/analyze")...)

	entries := observed.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "matching", ctx[FieldComponent])
	assert.Equal(t, "abc", ctx[FieldRequestID])
	assert.Equal(t, "/analyze", ctx[FieldPath])

	assert.Len(t, RequestFields("", ""), 0)
	assert.Len(t, CatalogFields("skills", "/data/skills_database.json"), 2)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("  abc ", 10))
	assert.Equal(t, "", Truncate("abc", 0))
}
