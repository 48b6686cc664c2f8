package helpers

import (
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, uint64(20), limit)

	offset, limit = CalculateOffsetLimit(0, 1000)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(DefaultPageSize), limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(37, 2, 10)
	assert.Equal(t, 4, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)

	clamped := NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, clamped.CurrentPage)
}

func TestParseListFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=2&size=500&search=jo&status=OPEN", nil)

	f := ParseListFilter(c)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, DefaultPageSize, f.Size)
	assert.Equal(t, "jo", f.Search)
	assert.Equal(t, "OPEN", f.Status)
}

func TestIsClock(t *testing.T) {
	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		assert.True(t, IsClock(ok), ok)
	}
	for _, bad := range []string{"24:00", "9:30", "09:60", "0930", ""} {
		assert.False(t, IsClock(bad), bad)
	}
	assert.True(t, ClockBefore("09:30", "10:30"))
	assert.False(t, ClockBefore("10:30", "10:30"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("03/02/2026")
	assert.Error(t, err)

	none, err := ParseOptionalDate(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestWeekdayDates(t *testing.T) {
	// Term runs Monday 2 Feb to Friday 27 Feb 2026
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

	tuesdays := WeekdayDates(start, end, time.Tuesday, map[string]bool{"2026-02-17": true})
	require.Len(t, tuesdays, 3)
	assert.Equal(t, "2026-02-03", tuesdays[0].Format(DateLayout))
	assert.Equal(t, "2026-02-10", tuesdays[1].Format(DateLayout))
	assert.Equal(t, "2026-02-24", tuesdays[2].Format(DateLayout))

	mondays := WeekdayDates(start, end, time.Monday, nil)
	assert.Len(t, mondays, 4)
	assert.Equal(t, "2026-02-02", mondays[0].Format(DateLayout))

	assert.Empty(t, WeekdayDates(end, start, time.Monday, nil))
}

func TestSessionStart(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	start, err := SessionStart(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, 9, start.Hour())
	assert.Equal(t, 30, start.Minute())
	assert.Equal(t, loc, start.Location())

	_, err = SessionStart(time.Now(), "9am", loc)
	assert.Error(t, err)
}
