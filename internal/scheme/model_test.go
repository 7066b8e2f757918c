package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, SplitLines("A\nB\nC"))
	assert.Equal(t, []string{"A", "B"}, SplitLines("A\n\n  \nB\n"))
	assert.Equal(t, []string{"only one"}, SplitLines("only one"))
	assert.Nil(t, SplitLines(""))
	assert.Nil(t, SplitLines("\n\n"))
}

func TestJoinLinesRoundTrip(t *testing.T) {
	original := "Aadhaar card\nLand records\nPassport photo"
	assert.Equal(t, original, JoinLines(SplitLines(original)))
}

func TestLinesToJSONRoundTrip(t *testing.T) {
	stored := LinesToJSON("A\nB\nC")
	assert.JSONEq(t, `["A","B","C"]`, string(stored))
	assert.Equal(t, "A\nB\nC", JSONToLines(stored))
}

func TestLinesToJSONEmptyInput(t *testing.T) {
	stored := LinesToJSON("")
	assert.JSONEq(t, `[]`, string(stored))
	assert.Equal(t, "", JSONToLines(stored))
}

func TestJSONToLinesBadPayload(t *testing.T) {
	assert.Equal(t, "", JSONToLines([]byte("not json")))
}
