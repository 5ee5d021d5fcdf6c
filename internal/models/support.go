package models

// SupportCategory classifies a support request.
type SupportCategory string

const (
	SupportQuestion  SupportCategory = "question"
	SupportComplaint SupportCategory = "complaint"
	SupportFeedback  SupportCategory = "feedback"
)

// AttachmentSet selects which attachments a download bundles.
type AttachmentSet string

const (
	AttachmentsQuestion AttachmentSet = "question"
	AttachmentsAnswer   AttachmentSet = "answer"
	AttachmentsAll      AttachmentSet = "all"
)

// Valid reports whether s is a known attachment set.
func (s AttachmentSet) Valid() bool {
	return s == AttachmentsQuestion || s == AttachmentsAnswer || s == AttachmentsAll
}

type SupportTicket struct {
	ID                  string          `json:"id"`
	FirstName           string          `json:"firstName"`
	LastName            string          `json:"lastName"`
	Email               string          `json:"email"`
	Subject             string          `json:"subject"`
	Category            SupportCategory `json:"category"`
	Question            string          `json:"question"`
	AdminAnswer         string          `json:"adminAnswer,omitempty"`
	AskedBy             *Person         `json:"askedBy,omitempty"`
	AnsweredBy          *Person         `json:"answeredBy,omitempty"`
	SeenAt              *string         `json:"seenAt,omitempty"`
	AnsweredAt          *string         `json:"answeredAt,omitempty"`
	Attachments         []Media         `json:"attachments,omitempty"`
	QuestionAttachments []Media         `json:"questionAttachments,omitempty"`
}

// IsAnswered reports whether an admin answered the ticket.
func (s SupportTicket) IsAnswered() bool {
	return s.AnsweredAt != nil || s.AdminAnswer != ""
}

// SupportFilter is the query object of the support list.
type SupportFilter struct {
	Name         string            `json:"name,omitempty"`
	Email        string            `json:"email,omitempty"`
	Category     []SupportCategory `json:"category,omitempty"`
	AnsweredByID string            `json:"answeredById,omitempty"`
	IsSeen       *bool             `json:"isSeen,omitempty"`
	IsAnswered   *bool             `json:"isAnswered,omitempty"`
}
