package email

import "fmt"

// Subject/body builders for the mail kinds the platform sends.

func WelcomeMessage(to, fullName string) *Message {
	return &Message{
		To:      to,
		Subject: "Welcome to PIWork",
		Body:    fmt.Sprintf("Hi %s,\n\nYour account is ready. Log in to create your first case or set up your investigator profile.\n", fullName),
	}
}

func CaseAssignedMessage(to, caseTitle string) *Message {
	return &Message{
		To:      to,
		Subject: "You have a new case assignment",
		Body:    fmt.Sprintf("You have been assigned to the case %q. Open the case to introduce yourself to the client.\n", caseTitle),
	}
}

func PlanChangedMessage(to, plan string, casesRemaining int) *Message {
	return &Message{
		To:      to,
		Subject: "Your subscription was updated",
		Body:    fmt.Sprintf("Your plan is now %s. You have %d cases available this cycle.\n", plan, casesRemaining),
	}
}
