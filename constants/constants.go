package constants

const (
	ROLE_ADMIN     = "Admin"
	ROLE_ORGANIZER = "Organizer"
	ROLE_ATTENDEE  = "Attendee"
)

var ROLE = []string{ROLE_ADMIN, ROLE_ORGANIZER, ROLE_ATTENDEE}

const (
	EVENT_UPCOMING = "Upcoming"
	EVENT_ENDED    = "Ended"
)

const (
	CHECKED_IN_YES = "Yes"
	CHECKED_IN_NO  = "No"
)

// Response messages.
const (
	ERROR_INPUT                = "Invalid input"
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Failed to read request data"
	NOT_PERMISSION             = "You do not have permission to perform this action"
	MISSING_TOKEN              = "Missing token"
	INVALID_TOKEN              = "Invalid token"
	INVALID_CREDENTIALS        = "Invalid email or password"
	ACCOUNT_NOT_ACTIVE         = "Account is not active"
	EMAIL_EXISTS               = "Email is already registered"
	ACCOUNT_NOT_FOUND          = "Account not found"

	EVENT_NOT_FOUND   = "Event not found"
	TICKET_NOT_FOUND  = "Ticket not found"
	TICKET_EXISTS     = "A ticket already exists for this event"
	TICKETS_NOT_FOUND = "No tickets found for this event"
	CHECK_IN_CODE_RO  = "Check-in code cannot be modified"
	SOLD_OUT          = "Tickets are sold out"

	REFERENCE_REQUIRED    = "Payment reference is required"
	TRANSACTION_NOT_FOUND = "Transaction not found"
	PAYMENT_NOT_FOUND     = "Payment not found"
	PAYMENT_FAILED        = "Payment failed"
	PAYMENT_SUCCESSFUL    = "Payment successful"
	GATEWAY_UNAVAILABLE   = "Payment gateway request failed"
	INVALID_SIGNATURE     = "Invalid webhook signature"

	CHECK_IN_CODE_UNKNOWN = "Check-in code not found for this event"
	ALREADY_CHECKED_IN    = "Attendee already checked in"
	IMAGE_UPLOAD_FAILED   = "Image upload failed"
)
