package crawler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVietnameseDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{"slash dmy", "Cập nhật 15/09/2025 lúc 10:00", date(2025, 9, 15), true},
		{"dash dmy", "05-10-2025", date(2025, 10, 5), true},
		{"ymd", "2025/09/15", date(2025, 9, 15), true},
		{"worded full", "Đăng ngày 15 tháng 9 năm 2025", date(2025, 9, 15), true},
		{"worded short", "15 tháng 9, 2025", date(2025, 9, 15), true},
		{"worded short no comma", "15 tháng 9 2025", date(2025, 9, 15), true},
		{"case insensitive", "NGÀY 2 THÁNG 1 NĂM 2026", date(2026, 1, 2), true},
		{"invalid calendar day", "31/02/2025", time.Time{}, false},
		{"month out of range", "10/13/2025 x", time.Time{}, false},
		{"no date", "Tin tức mới nhất", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVietnameseDate(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseVietnameseDateGrammarOrder(t *testing.T) {
	// The numeric dmy grammar wins over the worded one when both appear.
	got, ok := ParseVietnameseDate("10/10/2025 tức ngày 9 tháng 10 năm 2025")
	require.True(t, ok)
	assert.Equal(t, date(2025, 10, 10), got)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
