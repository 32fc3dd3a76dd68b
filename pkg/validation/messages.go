package validation

// User facing messages. They are rendered inline under the offending field.
const (
	MsgFullNameRequired     = "Please enter your name"
	MsgEmailRequired        = "Please enter your email"
	MsgEmailInvalid         = "Please enter a valid email address"
	MsgCategoryRequired     = "Choose a category for your idea"
	MsgIdeaTitleRequired    = "Give your idea a short title"
	MsgIdeaTitleTooLong     = "Keep the title under 100 characters"
	MsgDescriptionRequired  = "Describe your idea"
	MsgDescriptionTooLong   = "Keep the description under 2000 characters"
	MsgProblemsRequired     = "Pick at least one problem this solves"
	MsgProblemsTooMany      = "Pick no more than 3 problems"
	MsgUnknownProblem       = "Pick problems from the list"
	MsgProblemsDuplicate    = "Pick each problem only once"
	MsgUrgencyInvalid       = "Choose one of the listed urgency levels"
	MsgBetaTestingInvalid   = "Choose one of the listed beta testing options"
	MsgPrivacyConsentNeeded = "Please accept the privacy policy to submit"
)
