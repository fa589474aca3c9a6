// File: services/extract/extract_test.go
package extract

import (
	"testing"
	"time"

	"tablewala/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine pins the clock to a Wednesday so relative dates resolve
// deterministically.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(nil)
	// 2026-09-02 is a Wednesday.
	e.Now = func() time.Time {
		return time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)
	}
	return e
}

func TestGuestCount(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		utterance string
		want      int
		ok        bool
	}{
		{"a table for 4 please", 4, true},
		{"5 people", 5, true},
		{"we are five", 5, true},
		{"paanch log aayenge", 5, true},
		{"hum chaar log hain", 4, true},
		{"me and 3 more", 4, true},
		{"me and two more", 3, true},
		{"three and me", 4, true},
		{"just me", 0, false},
		{"0", 0, false},
		{"25 guests", 0, false},
		{"table chahiye", 0, false},
	}
	for _, tt := range tests {
		got, ok := e.GuestCount(tt.utterance)
		assert.Equal(t, tt.ok, ok, "utterance %q", tt.utterance)
		assert.Equal(t, tt.want, got, "utterance %q", tt.utterance)
	}
}

func TestGuestCountPartyVocabularyFromLexicon(t *testing.T) {
	lex := DefaultLexicon()
	lex.MoreConstructions = append(lex.MoreConstructions, "friends")
	lex.AndMeTails = append(lex.AndMeTails, "plus me")
	e := NewEngine(lex)

	got, ok := e.GuestCount("me and 3 friends")
	require.True(t, ok)
	assert.Equal(t, 4, got)

	got, ok = e.GuestCount("four plus me")
	require.True(t, ok)
	assert.Equal(t, 5, got)

	// Without the vocabulary entry the bare digit wins and undercounts.
	got, ok = newTestEngine(t).GuestCount("me and 3 friends")
	require.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestDateRelative(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		utterance string
		want      string
	}{
		{"book for today", "2026-09-02"},
		{"aaj hi", "2026-09-02"},
		{"tomorrow evening", "2026-09-03"},
		{"kal aana hai", "2026-09-03"},
		{"day after tomorrow", "2026-09-04"},
		{"parso", "2026-09-04"},
	}
	for _, tt := range tests {
		got, ok := e.Date(tt.utterance)
		require.True(t, ok, "utterance %q", tt.utterance)
		assert.Equal(t, tt.want, got, "utterance %q", tt.utterance)
	}
}

func TestDateWeekday(t *testing.T) {
	e := newTestEngine(t)

	// Reference clock is Wednesday 2026-09-02.
	got, ok := e.Date("friday works")
	require.True(t, ok)
	assert.Equal(t, "2026-09-04", got)

	// The same weekday as today means next week, never today.
	got, ok = e.Date("wednesday")
	require.True(t, ok)
	assert.Equal(t, "2026-09-09", got)

	// A next-week qualifier always adds a full week.
	got, ok = e.Date("next friday")
	require.True(t, ok)
	assert.Equal(t, "2026-09-11", got)

	got, ok = e.Date("agle somvar")
	require.True(t, ok)
	assert.Equal(t, "2026-09-14", got)
}

func TestDateAbsolute(t *testing.T) {
	e := newTestEngine(t)

	got, ok := e.Date("25/12/2026")
	require.True(t, ok)
	assert.Equal(t, "2026-12-25", got)

	got, ok = e.Date("25th december")
	require.True(t, ok)
	assert.Equal(t, "2026-12-25", got)

	got, ok = e.Date("december 25")
	require.True(t, ok)
	assert.Equal(t, "2026-12-25", got)

	// Overflow days are rejected, not normalized into March.
	_, ok = e.Date("31/02/2026")
	assert.False(t, ok)

	_, ok = e.Date("sometime soon")
	assert.False(t, ok)
}

func TestTimeOfDay(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		utterance string
		want      string
		ok        bool
	}{
		{"7 baje", "19:00", true},       // bare hour marker, dinner default
		{"subah 9 baje", "09:00", true}, // qualifier wins over the default
		{"raat 9 baje", "21:00", true},
		{"9 in the morning", "09:00", true},
		{"evening 7", "19:00", true},
		{"19:30", "19:30", true},
		{"7:45 pm", "19:30", true}, // minutes snap down to the slot grid
		{"8pm", "20:00", true},
		{"12 pm", "12:00", true},
		{"12 am", "00:00", true},
		{"7", "19:00", true},  // bare 5..11 assumed dinner
		{"3", "03:00", true},  // outside the dinner band, taken literally
		{"13", "13:00", true},
		{"whenever", "", false},
	}
	for _, tt := range tests {
		got, ok := e.TimeOfDay(tt.utterance)
		assert.Equal(t, tt.ok, ok, "utterance %q", tt.utterance)
		assert.Equal(t, tt.want, got, "utterance %q", tt.utterance)
	}
}

func TestCuisine(t *testing.T) {
	e := newTestEngine(t)

	got, ok := e.Cuisine("italian please")
	require.True(t, ok)
	assert.Equal(t, "italian", got)

	// Longer vocabulary entries win over their substrings.
	got, ok = e.Cuisine("north indian khana")
	require.True(t, ok)
	assert.Equal(t, "north indian", got)

	got, ok = e.Cuisine("punjabi food")
	require.True(t, ok)
	assert.Equal(t, "punjabi", got)

	// Unknown "<word> food" falls back to the captured word.
	got, ok = e.Cuisine("korean food")
	require.True(t, ok)
	assert.Equal(t, "korean", got)

	_, ok = e.Cuisine("surprise us")
	assert.False(t, ok)
}

func TestSpecialRequests(t *testing.T) {
	e := newTestEngine(t)

	tags := e.SpecialRequests("it is her birthday, we want a window seat and a cake")
	assert.ElementsMatch(t, []string{"birthday celebration", "window seat", "cake arrangement"}, tags)

	// Duplicated keywords collapse to one tag.
	tags = e.SpecialRequests("allergy alert, she is allergic to peanuts")
	assert.Equal(t, []string{"allergy note"}, tags)

	assert.Empty(t, e.SpecialRequests("nothing special"))
}

func TestName(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		utterance string
		want      string
		ok        bool
	}{
		{"my name is rahul sharma", "Rahul Sharma", true},
		{"i'm alex", "Alex", true},
		{"this is priya", "Priya", true},
		{"mera naam arjun hai", "Arjun", true},
		{"rohit", "Rohit", true}, // bare-name fallback
		{"anita desai here", "Anita Desai", true},
		{"", "", false},
		{"1234", "", false},
	}
	for _, tt := range tests {
		got, ok := e.Name(tt.utterance)
		assert.Equal(t, tt.ok, ok, "utterance %q", tt.utterance)
		assert.Equal(t, tt.want, got, "utterance %q", tt.utterance)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t)

	original := models.Fields{CustomerName: "Alex"}
	next, ok := e.Apply(FieldGuestCount, "4 people", original)
	require.True(t, ok)
	assert.Equal(t, 4, next.GuestCount)
	assert.Equal(t, 0, original.GuestCount)
	assert.Equal(t, "Alex", next.CustomerName)
}

func TestApplyMissReturnsUnchanged(t *testing.T) {
	e := newTestEngine(t)

	original := models.Fields{CustomerName: "Alex", GuestCount: 2}
	next, ok := e.Apply(FieldDate, "no idea yet", original)
	assert.False(t, ok)
	assert.Equal(t, original, next)
}
