// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money fields go out as JSON numbers, like every other numeric field.
	decimal.MarshalJSONWithoutQuotes = true
}

// Dictionary names the reporting queries depend on. The dictionary table is
// seeded with these; a missing entry resolves to id 0 and yields zero totals.
const (
	DictBody       = "body"
	DictPercent    = "percent"
	DictIssuance   = "issuance"
	DictCollection = "collection"
)

// DictionaryIDs is the name→id mapping resolved once at startup.
type DictionaryIDs struct {
	Body       int
	Percent    int
	Issuance   int
	Collection int
}

type User struct {
	ID               int64     `json:"id"`
	Login            string    `json:"login"`
	RegistrationDate time.Time `json:"registration_date"`
}

type Credit struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"user_id"`
	IssuanceDate     time.Time       `json:"issuance_date"`
	ReturnDate       time.Time       `json:"return_date"`
	ActualReturnDate *time.Time      `json:"actual_return_date"`
	Body             int64           `json:"body"`
	Percent          decimal.Decimal `json:"percent"`
}

// Closed reports whether the credit has been repaid.
func (c Credit) Closed() bool {
	return c.ActualReturnDate != nil
}

type Payment struct {
	ID          int64           `json:"id"`
	CreditID    int64           `json:"credit_id"`
	PaymentDate time.Time       `json:"payment_date"`
	TypeID      int             `json:"type_id"`
	Sum         decimal.Decimal `json:"sum"`
}

type Plan struct {
	ID         int64     `json:"id"`
	Period     time.Time `json:"period"`
	Sum        int64     `json:"sum"`
	CategoryID int       `json:"category_id"`
}

type DictionaryEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
