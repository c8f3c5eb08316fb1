package memstore

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/doculaw-ai/doculaw/internal/models"
)

// Demo credentials accepted out of the box.
const (
	DemoEmail    = "demo@doculaw.ai"
	DemoPassword = "demo123"
	demoUserID   = "mock-user-1"
)

// seed installs the demo account and a sample employment contract so the app
// is usable before any signup.
func (m *MemStore) seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return
	}

	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	m.users = append(m.users, models.User{
		ID:           demoUserID,
		Email:        DemoEmail,
		FullName:     "Demo User",
		PasswordHash: string(hash),
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    created,
		UpdatedAt:    time.Now(),
	})

	docDate := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	m.docs = append(m.docs, models.Document{
		ID:                  "1",
		UserID:              demoUserID,
		Title:               "Employment Contract - Tech Company",
		OriginalTitle:       "Employment Agreement between TechCorp Inc. and John Doe",
		OriginalContent:     demoOriginalContent,
		SimplifiedContent:   demoSimplifiedContent,
		FileType:            "application/pdf",
		FileSize:            2048000,
		PageCount:           12,
		Summary:             "Employment agreement with standard terms and benefits",
		Complexity:          "medium",
		SimplificationLevel: 85,
		Tags:                []string{"employment", "contract", "confidentiality"},
		Status:              models.StatusCompleted,
		Type:                "contract",
		CreatedAt:           docDate,
		UpdatedAt:           docDate,
	})
}

const demoOriginalContent = `EMPLOYMENT AGREEMENT

This Employment Agreement ("Agreement") is entered into as of [DATE], between [COMPANY NAME], a Delaware corporation ("Company"), and [EMPLOYEE NAME], an individual ("Employee").

WHEREAS, Company desires to employ Employee on the terms and conditions set forth herein; and
WHEREAS, Employee desires to be employed by Company on such terms and conditions;

NOW, THEREFORE, in consideration of the mutual covenants and agreements contained herein, and for other good and valuable consideration, the receipt and sufficiency of which are hereby acknowledged, the parties agree as follows:

1. EMPLOYMENT AND DUTIES
Employee shall serve as [POSITION TITLE] and shall have such powers, duties, and responsibilities as may be prescribed by Company's Board of Directors or Chief Executive Officer. Employee agrees to devote Employee's full business time and attention to the performance of Employee's duties hereunder.

2. TERM
This Agreement shall commence on [START DATE] and shall continue until terminated in accordance with the provisions hereof.

3. COMPENSATION
As compensation for Employee's services hereunder, Company shall pay Employee a base salary of $[AMOUNT] per annum, payable in accordance with Company's regular payroll practices.

4. CONFIDENTIALITY
Employee acknowledges that Employee may have access to certain confidential and proprietary information of Company. Employee agrees to maintain the confidentiality of such information and not to disclose it to any third party.

5. TERMINATION
This Agreement may be terminated by either party upon thirty (30) days written notice to the other party. Upon termination, Employee shall return all Company property and cease all activities on behalf of the Company.`

const demoSimplifiedContent = `EMPLOYMENT AGREEMENT - SIMPLIFIED VERSION

This is an employment contract between you and the company.

KEY POINTS:

What this contract is about:
• The company wants to hire you for a specific job
• You want to work for the company
• This contract explains the rules for your employment

Your Job (Section 1):
• You will work as [POSITION TITLE]
• Your boss and the company's leaders will tell you what to do
• You need to focus all your work time on this job

How Long This Lasts (Section 2):
• Your job starts on [START DATE]
• It continues until either you quit or the company lets you go (following the rules in this contract)

Your Pay (Section 3):
• The company will pay you $[AMOUNT] per year
• You'll get paid according to the company's normal schedule (like every two weeks)

Keeping Secrets (Section 4):
• You might learn company secrets while working
• You cannot tell these secrets to anyone outside the company
• This protects the company's private information

Leaving Your Job (Section 5):
• Either you or the company can end your job
• You both need to give 30 days notice before ending it
• When you leave, you must return anything that belongs to the company
• You must stop doing work for the company

IMPORTANT: This is a simplified explanation. The original legal document contains more details and specific legal terms that may be important for your situation.`
