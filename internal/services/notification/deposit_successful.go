package notification

import (
	"fmt"
	"strings"

	"depositor/internal/mail"
	"depositor/internal/models"

	"github.com/shopspring/decimal"
)

const TypeDepositSuccessful = "DepositSuccessful"

// DepositSuccessful tells a user their deposit was recorded.
type DepositSuccessful struct {
	Amount decimal.Decimal
	// AppName and AppURL fill in the salutation and the dashboard link.
	AppName string
	AppURL  string
}

func (n DepositSuccessful) Type() string {
	return TypeDepositSuccessful
}

func (n DepositSuccessful) Via(*models.User) []string {
	return []string{ChannelMail, ChannelDatabase}
}

func (n DepositSuccessful) ToMail(*models.User) *mail.Message {
	msg := mail.NewMessage().
		WithSubject("Deposit Successful").
		WithGreeting("Hello,").
		Line(n.message()).
		Action("View dashboard", strings.TrimRight(n.AppURL, "/")+"/home").
		Line("Thank you for using our application!")
	if n.AppName != "" {
		msg.WithSalutation("Regards, " + n.AppName)
	}
	return msg
}

func (n DepositSuccessful) ToDatabase(*models.User) map[string]any {
	return map[string]any{
		"data": n.message(),
	}
}

func (n DepositSuccessful) message() string {
	return fmt.Sprintf("Your deposit of %s was successful.", FormatAmount(n.Amount))
}

// FormatAmount prints an amount with the scale it was given: 42.50 stays "42.50", 100 stays "100".
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
