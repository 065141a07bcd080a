package dto

type EmailAndPasswordRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Token    string `json:"token"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type TokenPair struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int64  `json:"expiresIn"`
}

type RecaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}
