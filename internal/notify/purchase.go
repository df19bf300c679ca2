package notify

import (
	"fmt"
	"strings"
)

// PurchaseConfirmation builds the receipt email sent after a successful
// checkout. amountCents is the charged price in US cents.
func PurchaseConfirmation(name, email, orderID string, amountCents int) EmailMessage {
	firstName := name
	if i := strings.IndexByte(firstName, ' '); i > 0 {
		firstName = firstName[:i]
	}
	if firstName == "" {
		firstName = "Champion"
	}

	amount := fmt.Sprintf("$%d.%02d", amountCents/100, amountCents%100)

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Welcome to The Champion Method! Your order is confirmed.\n\n"+
			"Order ID: %s\n"+
			"Amount: %s\n\n"+
			"Your login details and course access are on their way to this inbox. "+
			"If you don't see them within a few minutes, check your spam folder.\n\n"+
			"Let's get to work,\n"+
			"The Champion Method Team\n",
		firstName, orderID, amount,
	)

	return EmailMessage{
		To:      email,
		ToName:  name,
		Subject: "Your Champion Method order is confirmed",
		Body:    body,
	}
}
