package participantservice

// Participant модель участника из ParticipantService
type Participant struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse модель ошибки от ParticipantService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
