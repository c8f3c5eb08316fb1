package responder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCannedConfidentialityKeywords(t *testing.T) {
	c := NewCanned()

	for _, q := range []string{
		"What does the confidentiality clause mean?",
		"WHAT IS A TRADE SECRET?",
		"Can I tell my spouse a Secret from work?",
	} {
		reply, err := c.Respond(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, confidentialityTemplate, reply, "question: %s", q)
	}
}

func TestCannedTerminationKeywords(t *testing.T) {
	c := NewCanned()

	for _, q := range []string{
		"Can they terminate me without notice?",
		"What happens if I get FIRED?",
	} {
		reply, err := c.Respond(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, terminationTemplate, reply, "question: %s", q)
	}
}

func TestCannedConfidentialityWinsOverTermination(t *testing.T) {
	c := NewCanned()

	reply, err := c.Respond(context.Background(), "If I'm fired, does confidentiality still apply?")
	require.NoError(t, err)
	assert.Equal(t, confidentialityTemplate, reply)
}

func TestCannedFallbackEchoesQuestion(t *testing.T) {
	c := NewCanned()

	reply, err := c.Respond(context.Background(), "What about my vacation days?")
	require.NoError(t, err)
	assert.Contains(t, reply, `"What about my vacation days?"`)
	assert.Contains(t, reply, "Would you like me to explain any particular part in more detail?")
}
