package profile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/zalando/go-keyring"
)

func TestNew_ClampsDayToMonth(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		wantMonth        time.Month
		wantDay          int
	}{
		{"Valid", 1990, 6, 15, time.June, 15},
		{"Day_Overflow_April", 1990, 4, 31, time.April, 30},
		{"Feb_NonLeap", 2023, 2, 29, time.February, 28},
		{"Feb_Leap", 2024, 2, 29, time.February, 29},
		{"Month_Too_High", 1990, 15, 10, time.December, 10},
		{"Month_Too_Low", 1990, 0, 10, time.January, 10},
		{"Day_Too_Low", 1990, 6, 0, time.June, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.year, tt.month, tt.day, 82)
			assert.Equal(t, tt.wantMonth, p.BirthDate.Month())
			assert.Equal(t, tt.wantDay, p.BirthDate.Day())
			assert.Equal(t, tt.year, p.BirthDate.Year())
		})
	}
}

func TestNew_ClampsExpectancy(t *testing.T) {
	assert.Equal(t, config.DefaultExpectancyYears, New(1990, 1, 1, 0).ExpectancyYears)
	assert.Equal(t, config.MinExpectancyYears, New(1990, 1, 1, 5).ExpectancyYears)
	assert.Equal(t, config.MaxExpectancyYears, New(1990, 1, 1, 300).ExpectancyYears)
}

func TestParseDate_Formats(t *testing.T) {
	want := time.Date(1990, 10, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"ISO8601", "1990-10-25", true},
		{"Basic", "19901025", true},
		{"RFC3339", "1990-10-25T00:00:00Z", true},
		{"With_Time_Component", "1990-10-25T13:45:00Z", true},
		{"Truncated_NoYear", "--10-25", false},
		{"Garbage", "not-a-date", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, want, got, "time-of-day must be stripped")
		})
	}
}

func TestShareQuery_RoundTrip(t *testing.T) {
	p := New(1984, 3, 14, 77)

	q := p.ShareQuery()
	assert.Contains(t, q, "dob=1984-03-14")
	assert.Contains(t, q, "exp=77")

	got := ParseShareQuery(q, Parameters{ExpectancyYears: config.DefaultExpectancyYears})
	assert.True(t, got.Equal(p))
}

func TestParseShareQuery_MalformedFallsBack(t *testing.T) {
	base := New(1990, 1, 1, 82)

	tests := []struct {
		name  string
		query string
	}{
		{"Bad_Date", "dob=yesterday&exp=80"},
		{"Bad_Expectancy", "dob=1990-01-01&exp=eighty"},
		{"Empty", ""},
		{"Unparseable_Query", "%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseShareQuery(tt.query, base)
			assert.True(t, got.BirthDate.Equal(base.BirthDate) || got.BirthDate.Year() == 1990)
			assert.GreaterOrEqual(t, got.ExpectancyYears, config.MinExpectancyYears)
			assert.LessOrEqual(t, got.ExpectancyYears, config.MaxExpectancyYears)
		})
	}
}

func TestParseShareQuery_ClampsExpectancy(t *testing.T) {
	got := ParseShareQuery("exp=500", Parameters{ExpectancyYears: config.DefaultExpectancyYears})
	assert.Equal(t, config.MaxExpectancyYears, got.ExpectancyYears)
}

func TestStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	s := NewStore()

	date := time.Date(1984, 3, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveBirthDate(date))

	got, err := s.LoadBirthDate()
	require.NoError(t, err)
	assert.Equal(t, date, got)
}

func TestStore_SaveZeroRemovesEntry(t *testing.T) {
	keyring.MockInit()
	s := NewStore()

	require.NoError(t, s.SaveBirthDate(time.Date(1984, 3, 14, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, s.SaveBirthDate(time.Time{}))

	_, err := s.LoadBirthDate()
	assert.Error(t, err, "entry must be gone after storing the zero date")
}

func TestImportVCardBirthDate(t *testing.T) {
	vcf := `BEGIN:VCARD
VERSION:4.0
FN:No Birthday
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Year Unknown
BDAY:--06-15
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Jane Doe
BDAY:1991-06-15
END:VCARD`

	got, err := ImportVCardBirthDate(strings.NewReader(vcf))
	require.NoError(t, err)
	assert.Equal(t, time.Date(1991, 6, 15, 0, 0, 0, 0, time.UTC), got,
		"cards without a full BDAY are skipped")
}

func TestImportVCardBirthDate_NoBDAY(t *testing.T) {
	vcf := "BEGIN:VCARD\nVERSION:4.0\nFN:Nobody\nEND:VCARD"

	_, err := ImportVCardBirthDate(strings.NewReader(vcf))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrNoBDAY)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.November))
}
