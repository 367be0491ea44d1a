package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAlertRecord(t *testing.T) {
	logged := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	event := validEvent()
	event.Log.Timestamp = logged

	record := NewAlertRecord(event, false)

	assert.Equal(t, "web-plugin", record.Source)
	assert.Equal(t, "security", record.Group)
	assert.Equal(t, "auth", record.Category)
	assert.Equal(t, "login-failed", record.Alert)
	assert.Equal(t, SeverityWarning, record.Severity)
	assert.Equal(t, logged, record.LoggedAt)
	assert.False(t, record.IsSystem)
}

func TestAlertQueryNormalizeDefaults(t *testing.T) {
	q := AlertQuery{}
	q.Normalize(0)

	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, 1, q.PageNumber)
	assert.Equal(t, 0, q.Offset())
}

func TestAlertQueryNormalizeTrims(t *testing.T) {
	q := AlertQuery{
		Search:     "  login ",
		Source:     " web-plugin ",
		Severity:   " Warning ",
		PageSize:   50,
		PageNumber: 3,
	}
	q.Normalize(200)

	assert.Equal(t, "login", q.Search)
	assert.Equal(t, "web-plugin", q.Source)
	assert.Equal(t, "warning", q.Severity)
	assert.Equal(t, 100, q.Offset())
}

func TestAlertQueryNormalizeFloorsPageNumber(t *testing.T) {
	q := AlertQuery{PageNumber: -2}
	q.Normalize(25)

	assert.Equal(t, 1, q.PageNumber)
	assert.Equal(t, 25, q.PageSize)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 200))
	assert.Equal(t, 1, PageCount(1, 200))
	assert.Equal(t, 1, PageCount(200, 200))
	assert.Equal(t, 2, PageCount(201, 200))
	assert.Equal(t, 0, PageCount(10, 0))
}
