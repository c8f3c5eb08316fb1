package responder

import (
	"context"
	"fmt"
	"strings"
)

// Canned selects one of a small set of fixed templates by substring matching.
// Deterministic and side-effect free; no inference happens here.
type Canned struct{}

func NewCanned() *Canned { return &Canned{} }

// Respond lower-cases the question and checks the keyword sets in order. The
// confidentiality check runs before the termination check, so a question
// matching both gets the confidentiality template. No match falls through to
// a generic reply that echoes the question verbatim.
func (c *Canned) Respond(_ context.Context, question string) (string, error) {
	lower := strings.ToLower(question)

	if strings.Contains(lower, "confidentiality") || strings.Contains(lower, "secret") {
		return confidentialityTemplate, nil
	}
	if strings.Contains(lower, "terminate") || strings.Contains(lower, "fired") {
		return terminationTemplate, nil
	}
	return fmt.Sprintf(fallbackTemplate, question), nil
}

var _ Strategy = (*Canned)(nil)

const confidentialityTemplate = `Great question about confidentiality! In legal terms, this means:

**Key Points:**
• You cannot share the company's private business information
• This includes trade secrets, client lists, financial data
• The obligation continues even after you leave
• Breaking confidentiality can result in legal action

**In Simple Terms:**
Think of it like keeping a friend's secret - but with legal consequences.`

const terminationTemplate = `Regarding termination clauses:

**How Employment Can End:**
• Either party can end the relationship with proper notice
• Usually requires 30 days written notice
• Different rules apply for misconduct
• You must return company property when leaving

**Protection for You:**
This means they can't just fire you without notice (except for serious misconduct).`

const fallbackTemplate = `I can help explain that! Based on your question about "%s", here's what you should know:

This relates to standard legal terms that protect both parties. Each section has specific implications for your rights and obligations.

Would you like me to explain any particular part in more detail?`
