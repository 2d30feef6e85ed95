package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteStoreErrorHidesUnexpectedErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := New(nil, nil, zap.New(core))

	rec := httptest.NewRecorder()
	h.writeStoreError(rec, "create_moment", errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("unexpected store error").Len())
}
