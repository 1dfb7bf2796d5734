package router

// User- and admin-facing message texts.
const (
	welcomeText = "👋 Welcome!\n" +
		"To get started, type /start and choose one:\n\n" +
		"🔑 Enter Code\n" +
		"- Submit a clue code you found\n" +
		"- Ensure that your CODE is prefixed with a # (e.g. #AB12)\n\n" +
		"🗣️ Talk to Admin\n" +
		"- Ask us a question\n\n" +
		"To do another action later, just tap a button or type /start again."

	enterCodePrompt = "(Code must be prefixed with #. For example: #AB34) Please enter your code:"
	talkAdminPrompt = "You are now connected to an admin. Send your message."

	invalidCodeText = "❌ Invalid code. Please press /start to try again."
	unknownCodeText = "❌ Invalid code. Find the clues first to obtain the code! Press /start again to re-enter code."

	invalidTicketText = "❌ Invalid code or no open ticket."
	sentToUserText    = "✅ Sent to user."
	noAdminsText      = "No admins available. Please try later."
	restartHintText   = "Type /start to send a message again to the admin. " +
		"Or simply select \"Enter Code\" or \"Talk to admin\" from the previous prompt"
)
