package dialogue

const (
	promptAskCode       = "Let's start! Please enter your verification code."
	promptIncorrectCode = "That code doesn't match. Please try again."
	promptNeedCodeText  = "Please enter the code as a text message."
	promptAskLocation   = "You're verified! Please share your location to finish setting up."
	promptNeedLocation  = "Please share your location to continue."
	promptNeedText      = "Please send a text message."
	promptAgentDown     = "Sorry, I'm having trouble responding right now. Please try again in a moment."
)
