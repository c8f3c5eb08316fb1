package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexityBuckets(t *testing.T) {
	low := "The cat sat. A dog ran."
	medium := "the tenant shall pay rent each month and keep the premises clean " +
		"and must not sublet the unit without consent."
	high := "Whereas the party of the first part shall pursuant to the " +
		"aforementioned covenant indemnify and hold harmless the party of the " +
		"second part notwithstanding any tortious conduct heretofore alleged " +
		"in any affidavit or subpoena issued by the court of competent " +
		"jurisdiction in this matter."

	assert.Equal(t, "low", Complexity(low))
	assert.Equal(t, "medium", Complexity(medium))
	assert.Equal(t, "high", Complexity(high))
	assert.Equal(t, "low", Complexity(""))
}

func TestKeywordsSkipsShortAndCommonWords(t *testing.T) {
	text := "The tenant agrees that the landlord may inspect the premises. The tenant agrees again."

	assert.Equal(t,
		[]string{"tenant", "agrees", "landlord", "inspect", "premises", "again"},
		Keywords(text))
}

func TestKeywordsCapsAtTen(t *testing.T) {
	text := "alpha bravo charlie delta echoes foxtrot golfer hotels india juliet kilos limas"

	got := Keywords(text)
	assert.Len(t, got, 10)
	assert.NotContains(t, got, "kilos")
}

func TestTypeFromMIME(t *testing.T) {
	assert.Equal(t, "PDF Document", TypeFromMIME("application/pdf"))
	assert.Equal(t, "Word Document", TypeFromMIME("application/msword"))
	assert.Equal(t, "Text Document", TypeFromMIME("text/plain"))
	assert.Equal(t, "Unknown Document", TypeFromMIME("image/png"))
}
